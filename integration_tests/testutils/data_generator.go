package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	moderationservice "github.com/allthingslinux/tux-sub001/app/modules/moderation/application"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

var caseTypes = []sharedtypes.CaseType{
	sharedtypes.CaseTypeBan,
	sharedtypes.CaseTypeKick,
	sharedtypes.CaseTypeJail,
	sharedtypes.CaseTypeWarn,
	sharedtypes.CaseTypeTimeout,
}

// RandomDiscordID returns a plausible snowflake-shaped ID.
func RandomDiscordID() sharedtypes.DiscordID {
	return sharedtypes.DiscordID(fmt.Sprintf("%d", gofakeit.Number(100000000000000000, 999999999999999999)))
}

// RandomCaseInput builds a valid, randomized case for the given guild.
func RandomCaseInput(guildID sharedtypes.GuildID) moderationservice.CaseInput {
	return moderationservice.CaseInput{
		GuildID:     guildID,
		UserID:      RandomDiscordID(),
		ModeratorID: RandomDiscordID(),
		CaseType:    caseTypes[gofakeit.Number(0, len(caseTypes)-1)],
		Reason:      gofakeit.Sentence(8),
	}
}
