package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cardropbot/cardrop/cardrop"
	"github.com/cardropbot/cardrop/cardrop/catalog"
	"github.com/cardropbot/cardrop/cardrop/utils"
	"github.com/disgoorg/disgo/discord"
)

// buildCardMessage renders a drawn card as an embed with the image file
// attached, so the bot never depends on external hosting.
func buildCardMessage(b *cardrop.Bot, card *catalog.Card, repeated bool, points, balance int64) (discord.MessageCreate, error) {
	data, err := b.Images.Bytes(card)
	if err != nil {
		return discord.MessageCreate{}, err
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{buildCardEmbed(card, repeated, points, balance)},
		Files: []*discord.File{
			discord.NewFile(card.ID, "", bytes.NewReader(data)),
		},
	}, nil
}

func buildCardEmbed(card *catalog.Card, repeated bool, points, balance int64) discord.Embed {
	repeatLine := "✅ NEW CARD!"
	if repeated {
		repeatLine = "🔄 REPEATED!"
	}

	return discord.NewEmbedBuilder().
		SetTitle("🎴 Card found!").
		SetDescription(fmt.Sprintf(
			"👤 Author: %s\n"+
				"%s Rarity: **%s**\n"+
				"%s\n\n"+
				"✨ +%d points\n"+
				"💰 New balance: **%s**",
			utils.FormatAuthor(card.Author),
			card.Rarity.Emoji(),
			strings.ToUpper(card.Rarity.String()),
			repeatLine,
			points,
			utils.FormatPoints(balance),
		)).
		SetColor(card.Rarity.Color()).
		SetImage("attachment://" + card.ID).
		Build()
}
