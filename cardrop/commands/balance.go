package commands

import (
	"fmt"
	"time"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 View your points and collection size",
}

func BalanceHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		record, err := b.Store.GetOrCreate(e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateError(e, "Error", "Failed to fetch your balance. Please try again later.")
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "💰 Balance",
				Description: fmt.Sprintf(
					"Points: **%s**\nCards in collection: **%d**",
					utils.FormatPoints(record.Balance),
					len(record.Cards),
				),
				Color: utils.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
