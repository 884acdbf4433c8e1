package commands

import (
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"
)

const maxSearchResults = 15

var Search = discord.SlashCommandCreate{
	Name:        "search",
	Description: "🔍 Search the card catalog by author or id",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Author handle or part of a card id",
			Required:    true,
		},
	},
}

// cardSearchItems implements fuzzy.Source over the catalog.
type cardSearchItems []catalog.Card

func (items cardSearchItems) Len() int {
	return len(items)
}

func (items cardSearchItems) String(i int) string {
	return strings.ToLower(items[i].Author + " " + items[i].ID)
}

func SearchHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := strings.TrimSpace(e.SlashCommandInteractionData().String("query"))

		cards, err := b.Catalog.Load()
		if err != nil {
			return utils.EH.CreateError(e, "Error", "Failed to load the catalog. Please try again later.")
		}
		if len(cards) == 0 {
			return utils.EH.CreateInfoEmbed(e, "The catalog is empty.")
		}

		items := cardSearchItems(cards)
		matches := fuzzy.FindFrom(strings.ToLower(query), items)
		if len(matches) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("No cards matching `%s`.", query))
		}
		if len(matches) > maxSearchResults {
			matches = matches[:maxSearchResults]
		}

		var sb strings.Builder
		for _, match := range matches {
			card := items[match.Index]
			sb.WriteString(fmt.Sprintf("%s %s — `%s`\n",
				card.Rarity.Emoji(), utils.FormatAuthor(card.Author), card.ID))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🔍 Results for \"%s\"", query),
				Description: sb.String(),
				Color:       utils.InfoColor,
			}},
		})
	}
}
