package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Help,
	Drop,
	Balance,
	Collection,
	Cases,
	Transfer,
	Search,
	Admin,
}
