package commands

import (
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "🎮 How the card game works",
}

func HelpHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		var points strings.Builder
		for _, rarity := range catalog.Rarities {
			points.WriteString(fmt.Sprintf("%s %s — %d points\n",
				rarity.Emoji(), rarity.String(), rarity.BasePoints()))
		}

		description := fmt.Sprintf(
			"**Commands:**\n"+
				"🎴 /drop — get a card (once per hour)\n"+
				"💰 /balance — check your points\n"+
				"📚 /collection — your cards (with ids for transfer)\n"+
				"🎁 /cases — open cases\n"+
				"🔄 /transfer — give a card to another player\n"+
				"🔍 /search — find cards in the catalog\n\n"+
				"**Points per rarity:**\n%s\n"+
				"🔄 A repeated card earns 50%% of its points",
			points.String(),
		)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎮 Card Game",
				Description: description,
				Color:       utils.InfoColor,
			}},
		})
	}
}
