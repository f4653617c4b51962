package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/ai"
	"github.com/winimoid/organext/internal/credential"
	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/theme"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the AI assistant about your organizer",
	Long: "chat opens an interactive session with the assistant. It can\n" +
		"search your tasks and summarize your agenda, but never modifies\n" +
		"records. The conversation is saved to the database.",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening organizer", err)
		}
		defer a.Close()

		apiKey, err := credential.Get(credential.KeyAnthropicAPIKey)
		if err != nil {
			fatal("no API key configured (run: organext credential set anthropic_api_key <key>)", err)
		}

		assistant := ai.New(apiKey, a.store, a.cfg.AI.Model, a.cfg.AI.MaxTokens)
		ctx := context.Background()

		conv, err := a.store.CreateConversation(ctx, model.Conversation{
			Model: assistant.Model(),
		})
		if err != nil {
			fatal("creating conversation", err)
		}

		fmt.Println(theme.HeaderStyle.Render("organext assistant"))
		fmt.Println(theme.MetaStyle.Render("model: " + assistant.Model() + "  (type /quit to exit)"))
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(theme.TitleStyle.Render("you> "))
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "/quit" || input == "/exit" {
				break
			}

			if _, err := a.store.AddChatMessage(ctx, model.ChatMessage{
				ConversationID: conv.ID,
				Sender:         model.SenderUser,
				Text:           input,
			}); err != nil {
				slog.Warn("saving user message failed", "error", err)
			}

			ch, err := assistant.SendMessage(ctx, input)
			if err != nil {
				fmt.Println(theme.OverdueStyle.Render("error: " + err.Error()))
				continue
			}

			var reply strings.Builder
			for chunk := range ch {
				fmt.Print(chunk.Text)
				reply.WriteString(chunk.Text)
			}
			fmt.Println()
			fmt.Println()

			if reply.Len() > 0 {
				if _, err := a.store.AddChatMessage(ctx, model.ChatMessage{
					ConversationID: conv.ID,
					Sender:         model.SenderAssistant,
					Text:           reply.String(),
				}); err != nil {
					slog.Warn("saving assistant message failed", "error", err)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
