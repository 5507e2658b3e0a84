package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/smartpantry/pkg/app"
	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/metrics"
	"github.com/korjavin/smartpantry/pkg/profile"
	"github.com/korjavin/smartpantry/pkg/state"
	"github.com/korjavin/smartpantry/pkg/suggest"
	"github.com/korjavin/smartpantry/pkg/telegram"
)

const doneAddingCallback = "done_adding"

func main() {
	log := logger.Global
	log.Info("Starting SmartPantry bot...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Error("Failed to configure logger: %v", err)
		os.Exit(1)
	}
	log = logger.Global
	defer log.Sync()

	if err := cfg.RequireBotToken(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Debug("Configuration: %+v", cfg.Redacted())

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		log.Error("Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.Close()
	a.StartBackground()

	stateManager := state.New()

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	send := func(chatID int64, text string) {
		if _, err := bot.SendMessage(chatID, text); err != nil {
			log.Error("Failed to send message to chat %d: %v", chatID, err)
		}
	}

	// parseIngredients prefers the model and falls back to splitting lines and commas
	parseIngredients := func(text string) []string {
		if a.AI != nil {
			parsed, err := a.AI.ParseIngredientsFromText(context.Background(), text)
			if err == nil && len(parsed) > 0 {
				return parsed
			}
			if err != nil {
				log.Warn("Falling back to plain ingredient parsing: %v", err)
			}
		}
		return catalog.ParseFreeText(text)
	}

	addIngredients := func(chatID int64, items []string) {
		if len(items) == 0 {
			send(chatID, "I couldn't find any ingredients in your message. Please send one per line or separate them with commas.")
			return
		}
		added, err := a.Pantry.Add(chatID, items...)
		if err != nil {
			log.Error("Failed to add ingredients: %v", err)
			send(chatID, "😢 Sorry, I couldn't update your pantry. Please try again.")
			return
		}
		send(chatID, fmt.Sprintf("✅ Added %d new ingredients: %s", added, strings.Join(items, ", ")))
	}

	showPantry := func(chatID int64) {
		names, err := a.Pantry.Names(chatID)
		if err != nil {
			log.Error("Failed to list pantry: %v", err)
			send(chatID, "😢 Sorry, I couldn't read your pantry.")
			return
		}
		send(chatID, messages.FormatPantry(names))
	}

	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			send(message.Chat.ID, messages.WelcomeText+
				"\n\n/add <ingredients> - add to your pantry\n/profile <name> - load a profile's pantry\n/suggest [tags] - get recipes\n/pantry - show your pantry\n/clear - empty your pantry\n/stats - catalog statistics")
		},
		"profiles": func(message *tgbotapi.Message) {
			profiles, err := a.Profiles.List()
			if err != nil {
				log.Error("Failed to list profiles: %v", err)
				send(message.Chat.ID, "😢 Sorry, I couldn't load the profiles.")
				return
			}
			if len(profiles) == 0 {
				send(message.Chat.ID, "No profiles available.")
				return
			}
			cards := make([]string, len(profiles))
			for i, p := range profiles {
				cards[i] = messages.FormatProfile(p)
			}
			send(message.Chat.ID, strings.Join(cards, "\n\n")+"\n\nUse /profile <name> to load one.")
		},
		"profile": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			name := strings.TrimSpace(message.CommandArguments())
			if name == "" {
				send(chatID, "Usage: /profile <name>")
				return
			}
			p, err := a.Profiles.GetByName(name)
			if errors.Is(err, profile.ErrNotFound) {
				send(chatID, fmt.Sprintf("No profile named %q. Use /profiles to see them all.", name))
				return
			}
			if err != nil {
				log.Error("Failed to get profile %s: %v", name, err)
				send(chatID, "😢 Sorry, I couldn't load that profile.")
				return
			}
			if err := a.Pantry.Replace(chatID, p.Ingredients); err != nil {
				log.Error("Failed to load profile pantry: %v", err)
				send(chatID, "😢 Sorry, I couldn't update your pantry.")
				return
			}
			send(chatID, messages.FormatProfile(*p))
			showPantry(chatID)
		},
		"pantry": func(message *tgbotapi.Message) {
			showPantry(message.Chat.ID)
		},
		"add": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			args := strings.TrimSpace(message.CommandArguments())
			if args != "" {
				addIngredients(chatID, parseIngredients(args))
				return
			}
			stateManager.SetState(chatID, state.StateAddingIngredients)
			keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Done adding ingredients", doneAddingCallback),
			))
			if _, err := bot.SendMessageWithKeyboard(chatID, "Send me your ingredients, one per line or separated by commas. You can send several messages.", keyboard); err != nil {
				log.Error("Failed to send message: %v", err)
			}
		},
		"clear": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			if err := a.Pantry.Reset(chatID); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				send(chatID, "😢 Sorry, I couldn't clear your pantry.")
				return
			}
			stateManager.ClearState(chatID)
			send(chatID, "🧹 Pantry cleared! Use /add to fill it again.")
		},
		"suggest": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			tags := strings.Fields(message.CommandArguments())

			results, names, err := a.Suggest.SuggestForChat(chatID, suggest.Options{Tags: tags, Source: metrics.SourceTelegram})
			if err != nil {
				log.Error("Failed to suggest recipes: %v", err)
				send(chatID, "😢 Sorry, I couldn't find suggestions right now.")
				return
			}
			if len(names) == 0 {
				send(chatID, messages.EmptyPantryText)
				return
			}
			if len(results) == 0 {
				send(chatID, messages.NoMatchesText)
				return
			}

			if _, err := bot.SendMessageWithKeyboard(chatID, messages.FormatMatches(results), telegram.StepsKeyboard(results)); err != nil {
				log.Error("Failed to send suggestions: %v", err)
				return
			}
			send(chatID, a.Messages.AssistantResponse(context.Background(), names, results[0].Title))
		},
		"stats": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			text := messages.FormatStats(a.Catalog.Stats())
			if usage, err := a.Stats.GetUsage(chatID); err != nil {
				log.Warn("Failed to get usage for chat %d: %v", chatID, err)
			} else if usage.Requests > 0 {
				text += fmt.Sprintf("\nYour requests: %d (%d without matches)", usage.Requests, usage.EmptyResults)
			}
			send(chatID, text)
		},
	}

	callbackHandlers := map[string]telegram.CallbackHandler{
		telegram.StepsCallbackPrefix: func(callback *tgbotapi.CallbackQuery) {
			id, err := telegram.ParseStepsCallback(callback.Data)
			if err != nil {
				log.Warn("Bad steps callback: %v", err)
				bot.AnswerCallbackQuery(callback.ID, "Unknown recipe")
				return
			}
			recipe, ok := a.Catalog.Get(id)
			if !ok {
				bot.AnswerCallbackQuery(callback.ID, "Recipe not found")
				return
			}
			bot.AnswerCallbackQuery(callback.ID, "")
			send(callback.Message.Chat.ID, messages.FormatStepsMessage(recipe.Title, recipe.Steps))
		},
		doneAddingCallback: func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			stateManager.ClearState(chatID)
			bot.AnswerCallbackQuery(callback.ID, "Thanks! Your pantry is now updated.")

			editMsg := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, "✅ Pantry update complete! Use /pantry to see your ingredients or /suggest to get recipes.")
			editMsg.ReplyMarkup = &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
			if _, err := bot.Send(editMsg); err != nil {
				log.Error("Failed to edit message: %v", err)
			}
		},
	}

	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
			return
		}
		chatID := update.Message.Chat.ID
		if stateManager.GetState(chatID) != state.StateAddingIngredients {
			send(chatID, "Use /add to add ingredients or /suggest to get recipes.")
			return
		}
		// refresh the state so a long list spread over messages does not expire
		stateManager.SetState(chatID, state.StateAddingIngredients)
		addIngredients(chatID, parseIngredients(update.Message.Text))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutting down...")
		bot.Stop()
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}
