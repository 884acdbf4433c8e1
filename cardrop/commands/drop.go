package commands

import (
	"fmt"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/gacha"
	"github.com/cardropbot/cardrop/cardrop/logger"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Drop = discord.SlashCommandCreate{
	Name:        "drop",
	Description: "🎴 Draw a free card (once per hour)",
}

func DropHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		result, err := b.Game.FreeDraw(e.User().ID.String(), e.User().Username)
		if err != nil {
			logger.LogError("Free draw failed", err,
				"user_id", e.User().ID.String())
			return utils.EH.CreateError(e, "Error", "Something went wrong with your draw. Please try again later.")
		}

		switch result.Status {
		case gacha.DrawOnCooldown:
			return utils.EH.CreateError(e, "Cooldown",
				fmt.Sprintf("Next free card in %s", utils.FormatRemaining(result.Remaining)))
		case gacha.DrawNoCards:
			return utils.EH.CreateErrorEmbed(e, "There are no cards in the deck yet!")
		}

		logger.LogGame("Card drawn",
			"user_id", e.User().ID.String(),
			"card_id", result.Card.ID,
			"rarity", result.Card.Rarity.String(),
			"repeated", result.Repeated,
			"points", result.Points,
		)

		msg, err := buildCardMessage(b, result.Card, result.Repeated, result.Points, result.Balance)
		if err != nil {
			logger.LogError("Failed to attach card image", err)
			return utils.EH.CreateError(e, "Error", "Failed to load the card image.")
		}
		return e.CreateMessage(msg)
	}
}
