package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List your chats once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}
		defer session.Logout()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		chats, err := session.Client.Chats(ctx)
		if err != nil {
			return err
		}
		if len(chats) == 0 {
			fmt.Println("no chats yet")
			return nil
		}
		for _, c := range chats {
			when := "-"
			if c.LastMessageTime != nil {
				when = c.LastMessageTime.Format(time.RFC822)
			}
			fmt.Printf("%d\t%s\t%s\n", c.ID, when, c.LastMessage)
		}
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List your notifications once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}
		defer session.Logout()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		notifications, err := session.Client.Notifications(ctx)
		if err != nil {
			return err
		}
		for _, n := range notifications {
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s %d\t%s\t%s\n", marker, n.ID, n.Type, n.Title)
		}
		return nil
	},
}
