package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"roomease-server/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch [chatID]",
	Short: "Follow notifications and chats live",
	Long: `watch polls notifications, the unread badge and the chat list, printing
changes as they arrive. With a chat ID it also follows that conversation
on the fast cadence. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := buildSession()
		if err != nil {
			return err
		}
		defer session.Logout()

		session.WatchUnreadCount(func(count int64) {
			fmt.Printf("[badge] %d unread\n", count)
		})
		session.WatchNotifications(func(notifications []models.Notification) {
			for _, n := range notifications {
				if !n.IsRead {
					fmt.Printf("[notif] %s: %s\n", n.Type, n.Title)
				}
			}
		})
		session.WatchChats(func(chats []models.Chat) {
			for _, c := range chats {
				fmt.Printf("[chat %d] %s\n", c.ID, c.LastMessage)
			}
		})

		if len(args) == 1 {
			chatID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid chat id %q", args[0])
			}
			session.WatchChat(uint(chatID), func(chat *models.Chat) {
				if n := len(chat.Messages); n > 0 {
					last := chat.Messages[n-1]
					fmt.Printf("[chat %d] <%d> %s\n", chat.ID, last.SenderID, last.Content)
				}
			})
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		fmt.Println("stopping")
		return nil
	},
}
