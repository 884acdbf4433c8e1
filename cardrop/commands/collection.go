package commands

import (
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
)

const collectionLinesPerPage = 15

var Collection = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "📚 Browse your card collection (with ids for /transfer)",
}

func CollectionHandler(b *cardrop.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		owned, err := b.Game.Collection(e.User().ID.String())
		if err != nil {
			return utils.EH.CreateError(e, "Error", "Failed to load your collection. Please try again later.")
		}

		if len(owned) == 0 {
			return utils.EH.CreateInfoEmbed(e, "📭 You don't have any cards yet! Try /drop.")
		}

		lines := formatCollection(owned)
		pages := (len(lines) + collectionLinesPerPage - 1) / collectionLinesPerPage

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * collectionLinesPerPage
				endIdx := min(startIdx+collectionLinesPerPage, len(lines))

				embed.
					SetTitle("📚 My Collection").
					SetDescription(strings.Join(lines[startIdx:endIdx], "\n")).
					SetColor(utils.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Total: %d cards", page+1, pages, len(owned)), "")
			},
			Pages:      pages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// formatCollection groups owned cards by rarity, then by author, keeping
// tiers in descending value order. Each card line carries the id used by
// /transfer.
func formatCollection(owned []catalog.Card) []string {
	byRarity := make(map[catalog.Rarity]map[string][]catalog.Card)
	for _, card := range owned {
		if byRarity[card.Rarity] == nil {
			byRarity[card.Rarity] = make(map[string][]catalog.Card)
		}
		byRarity[card.Rarity][card.Author] = append(byRarity[card.Rarity][card.Author], card)
	}

	var lines []string
	for i := len(catalog.Rarities) - 1; i >= 0; i-- {
		rarity := catalog.Rarities[i]
		authors := byRarity[rarity]
		if len(authors) == 0 {
			continue
		}

		total := 0
		for _, cards := range authors {
			total += len(cards)
		}
		lines = append(lines, fmt.Sprintf("%s **%s** (%d)",
			rarity.Emoji(), strings.ToUpper(rarity.String()), total))

		// Keep author blocks in first-seen catalog order.
		seen := make(map[string]bool)
		for _, card := range owned {
			if card.Rarity != rarity || seen[card.Author] {
				continue
			}
			seen[card.Author] = true
			cards := authors[card.Author]
			lines = append(lines, fmt.Sprintf("  • %s (%d):", utils.FormatAuthor(card.Author), len(cards)))
			for _, c := range cards {
				lines = append(lines, fmt.Sprintf("      `%s`", c.ID))
			}
		}
	}
	return lines
}
