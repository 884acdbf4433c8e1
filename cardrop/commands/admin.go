package commands

import (
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/gacha"
	"github.com/cardropbot/cardrop/cardrop/logger"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var targetOption = discord.ApplicationCommandOptionString{
	Name:        "user",
	Description: "Target player: @username or numeric id",
	Required:    true,
}

var Admin = discord.SlashCommandCreate{
	Name:        "admin",
	Description: "👑 Admin panel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add-points",
			Description: "Credit points to a player",
			Options: []discord.ApplicationCommandOption{
				targetOption,
				discord.ApplicationCommandOptionInt{
					Name:        "points",
					Description: "Amount to add",
					Required:    true,
					MinValue:    &[]int{1}[0],
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove-points",
			Description: "Debit points from a player (clamped at zero)",
			Options: []discord.ApplicationCommandOption{
				targetOption,
				discord.ApplicationCommandOptionInt{
					Name:        "points",
					Description: "Amount to remove",
					Required:    true,
					MinValue:    &[]int{1}[0],
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "give-card",
			Description: "Grant a catalog card to a player",
			Options: []discord.ApplicationCommandOption{
				targetOption,
				discord.ApplicationCommandOptionString{
					Name:        "card_id",
					Description: "Card id (the filename)",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "reset-cooldown",
			Description: "Clear a player's free-draw cooldown",
			Options: []discord.ApplicationCommandOption{
				targetOption,
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "reload",
			Description: "Rescan the card directory",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "stats",
			Description: "Bot-wide statistics",
		},
	},
}

func AdminHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Cfg.Bot.IsAdmin(e.User().ID) {
			return utils.EH.CreateError(e, "Permission denied", "You are not an administrator.")
		}

		data := e.SlashCommandInteractionData()
		if data.SubCommandName == nil {
			return utils.EH.CreateErrorEmbed(e, "Missing subcommand.")
		}

		switch *data.SubCommandName {
		case "add-points":
			return handleAddPoints(b, e)
		case "remove-points":
			return handleRemovePoints(b, e)
		case "give-card":
			return handleGiveCard(b, e)
		case "reset-cooldown":
			return handleResetCooldown(b, e)
		case "reload":
			return handleReload(b, e)
		case "stats":
			return handleStats(b, e)
		default:
			return utils.EH.CreateErrorEmbed(e, "Unknown subcommand.")
		}
	}
}

func handleAddPoints(b *cardrop.Bot, e *handler.CommandEvent) error {
	data := e.SlashCommandInteractionData()
	target := strings.TrimSpace(data.String("user"))
	points := int64(data.Int("points"))

	balance, found, err := b.Game.AddPoints(target, points)
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to update the balance.")
	}
	if !found {
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Player %s not found.", target))
	}

	logger.LogGame("Points credited", "target", target, "points", points)
	return utils.EH.CreateSuccessEmbed(e,
		fmt.Sprintf("Added %d points to %s (balance: %s).", points, target, utils.FormatPoints(balance)))
}

func handleRemovePoints(b *cardrop.Bot, e *handler.CommandEvent) error {
	data := e.SlashCommandInteractionData()
	target := strings.TrimSpace(data.String("user"))
	points := int64(data.Int("points"))

	balance, found, err := b.Game.RemovePoints(target, points)
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to update the balance.")
	}
	if !found {
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Player %s not found.", target))
	}

	logger.LogGame("Points debited", "target", target, "points", points)
	return utils.EH.CreateSuccessEmbed(e,
		fmt.Sprintf("Removed %d points from %s (balance: %s).", points, target, utils.FormatPoints(balance)))
}

func handleGiveCard(b *cardrop.Bot, e *handler.CommandEvent) error {
	data := e.SlashCommandInteractionData()
	target := strings.TrimSpace(data.String("user"))
	cardID := strings.TrimSpace(data.String("card_id"))

	status, err := b.Game.GiveCard(target, cardID)
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to grant the card.")
	}

	switch status {
	case gacha.GiveUnknownCard:
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Card `%s` not found.", cardID))
	case gacha.GiveUnknownUser:
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Player %s not found.", target))
	case gacha.GiveAlreadyOwned:
		return utils.EH.CreateErrorEmbed(e, "That player already owns this card.")
	}

	logger.LogGame("Card granted", "target", target, "card_id", cardID)
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Card `%s` granted to %s.", cardID, target))
}

func handleResetCooldown(b *cardrop.Bot, e *handler.CommandEvent) error {
	target := strings.TrimSpace(e.SlashCommandInteractionData().String("user"))

	found, err := b.Game.ResetCooldown(target)
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to reset the cooldown.")
	}
	if !found {
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Player %s not found.", target))
	}

	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Cooldown reset for %s.", target))
}

func handleReload(b *cardrop.Bot, e *handler.CommandEvent) error {
	count, err := b.Game.ReloadCatalog()
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to reload the catalog.")
	}
	b.Images.Purge()

	logger.LogSystem("Catalog reloaded", "cards", count)
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Catalog reloaded: %d cards.", count))
}

func handleStats(b *cardrop.Bot, e *handler.CommandEvent) error {
	stats, err := b.Game.Stats()
	if err != nil {
		return utils.EH.CreateError(e, "Error", "Failed to collect statistics.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"👥 Players: %d\n"+
			"💰 Total balance: %s\n"+
			"🃏 Cards owned by players: %d\n"+
			"📦 Cards in the game: %d\n\n"+
			"**Catalog by rarity:**\n",
		stats.Users,
		utils.FormatPoints(stats.TotalBalance),
		stats.TotalOwned,
		stats.CatalogSize,
	))
	for _, rarity := range catalog.Rarities {
		count := stats.PerRarity[rarity]
		percentage := 0.0
		if stats.CatalogSize > 0 {
			percentage = float64(count) / float64(stats.CatalogSize) * 100
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d (%.1f%%)\n",
			rarity.Emoji(), rarity.String(), count, percentage))
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "📊 Bot Statistics",
			Description: sb.String(),
			Color:       utils.InfoColor,
		}},
	})
}
