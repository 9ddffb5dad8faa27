package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinjinsansan/kanjou/internal/ui"
)

var (
	chatRoom      string
	chatSender    string
	chatCounselor string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send and read counseling chat messages",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message to a chat room",
	Long: `Send a message to a chat room on the remote store.

Exactly one of --sender and --counselor must be given; it determines
which side of the conversation the message belongs to.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		msg, err := svc.SendMessage(context.Background(), chatRoom, args[0], chatSender, chatCounselor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sending message: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Sent to %s (%s)\n", ui.RenderPass("✓"), chatRoom, ui.RenderMuted(msg.ID))
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a chat room's messages, oldest first",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		svc, _, rs := newService(cfg)
		if rs != nil {
			defer rs.Close()
		}

		messages, err := svc.Messages(context.Background(), chatRoom)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching messages: %v\n", err)
			os.Exit(1)
		}

		if len(messages) == 0 {
			fmt.Printf("%s No messages in %s\n", ui.RenderMuted("·"), chatRoom)
			return
		}

		for _, msg := range messages {
			who := "you"
			if msg.IsCounselor {
				who = "counselor"
			}
			fmt.Printf("%s %s: %s\n", ui.RenderMuted(msg.CreatedAt), ui.RenderAccent(who), msg.Content)
		}
	},
}

func init() {
	chatCmd.PersistentFlags().StringVar(&chatRoom, "room", "", "chat room id")
	_ = chatCmd.MarkPersistentFlagRequired("room")
	chatSendCmd.Flags().StringVar(&chatSender, "sender", "", "send as this user id")
	chatSendCmd.Flags().StringVar(&chatCounselor, "counselor", "", "send as this counselor id")
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatListCmd)
	rootCmd.AddCommand(chatCmd)
}
