package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/gacha"
	"github.com/cardropbot/cardrop/cardrop/logger"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Cases = discord.SlashCommandCreate{
	Name:        "cases",
	Description: "🎁 Open the case shop",
}

func CasesHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		var sb strings.Builder
		sb.WriteString("🎁 **CASE SHOP**\n")
		for _, tier := range gacha.CaseTiers {
			sb.WriteString(fmt.Sprintf("\n📦 **%s (%s)**\n", tier.DisplayName(), utils.FormatPoints(tier.Price())))
			for _, chance := range tier.Chances() {
				sb.WriteString(fmt.Sprintf("%s %s: %.0f%%\n",
					chance.Rarity.Emoji(), chance.Rarity.String(), chance.Weight*100))
			}
		}

		buttons := make([]discord.InteractiveComponent, 0, len(gacha.CaseTiers)+1)
		for _, tier := range gacha.CaseTiers {
			buttons = append(buttons, discord.NewPrimaryButton(
				fmt.Sprintf("📦 %s (%d)", tier.DisplayName(), tier.Price()),
				"/case/"+tier.String(),
			))
		}
		buttons = append(buttons, discord.NewDangerButton("❌ Cancel", "/case/cancel"))

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Description: sb.String(),
				Color:       utils.EmbedDefaultColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(buttons...),
			},
		})
	}
}

// CaseButtonHandler reacts to the shop buttons. The purchase only goes
// through when the balance covers the price and the catalog can produce a
// card; declined purchases leave the balance untouched.
func CaseButtonHandler(b *cardrop.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.ButtonInteractionData)
		if !ok {
			return fmt.Errorf("invalid interaction type")
		}

		action := strings.TrimPrefix(data.CustomID(), "/case/")
		if action == "cancel" {
			return e.UpdateMessage(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "❌ Purchase cancelled",
					Color:       utils.ErrorColor,
				}},
				Components: &[]discord.ContainerComponent{},
			})
		}

		tier, ok := gacha.ParseCaseTier(action)
		if !ok {
			return utils.EH.CreateEphemeralError(e, "Unknown case.")
		}

		result, err := b.Game.OpenCase(e.User().ID.String(), e.User().Username, tier)
		if err != nil {
			logger.LogError("Case purchase failed", err,
				"user_id", e.User().ID.String(),
				"tier", tier.String())
			return utils.EH.CreateEphemeralError(e, "Something went wrong with your purchase. Please try again later.")
		}

		switch result.Status {
		case gacha.CaseInsufficientFunds:
			return utils.EH.CreateEphemeralError(e,
				fmt.Sprintf("Not enough points! %s costs %s, you have %s.",
					tier.DisplayName(), utils.FormatPoints(tier.Price()), utils.FormatPoints(result.Balance)))
		case gacha.CaseNoCards:
			return utils.EH.CreateEphemeralError(e, "The case is empty — no cards in the deck yet!")
		}

		logger.LogGame("Case opened",
			"user_id", e.User().ID.String(),
			"tier", tier.String(),
			"card_id", result.Card.ID,
			"repeated", result.Repeated,
			"points", result.Points,
		)

		imageData, err := b.Images.Bytes(result.Card)
		if err != nil {
			logger.LogError("Failed to attach card image", err)
			return utils.EH.CreateEphemeralError(e, "Failed to load the card image.")
		}

		embed := buildCardEmbed(result.Card, result.Repeated, result.Points, result.Balance)
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &[]discord.Embed{embed},
			Components: &[]discord.ContainerComponent{},
			Files: []*discord.File{
				discord.NewFile(result.Card.ID, "", bytes.NewReader(imageData)),
			},
		})
	}
}
