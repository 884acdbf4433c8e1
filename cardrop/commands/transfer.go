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

var Transfer = discord.SlashCommandCreate{
	Name:        "transfer",
	Description: "🔄 Give one of your cards to another player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "The player receiving the card",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "card_id",
			Description: "Card id from /collection",
			Required:    true,
		},
	},
}

func TransferHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		cardID := data.String("card_id")

		status, err := b.Game.Transfer(e.User().ID.String(), target.ID.String(), cardID)
		if err != nil {
			logger.LogError("Transfer failed", err,
				"from", e.User().ID.String(),
				"to", target.ID.String(),
				"card_id", cardID)
			return utils.EH.CreateError(e, "Error", "Something went wrong with the transfer. Please try again later.")
		}

		switch status {
		case gacha.TransferNotOwned:
			return utils.EH.CreateErrorEmbed(e, "You don't own that card!")
		case gacha.TransferUnknownUser:
			return utils.EH.CreateErrorEmbed(e,
				fmt.Sprintf("%s hasn't played yet — they need to use /drop first.", target.Username))
		case gacha.TransferSelf:
			return utils.EH.CreateErrorEmbed(e, "You can't transfer a card to yourself!")
		}

		logger.LogGame("Card transferred",
			"from", e.User().ID.String(),
			"to", target.ID.String(),
			"card_id", cardID,
		)

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Card `%s` transferred to %s!", cardID, target.Username))
	}
}
