package utils

import (
	"fmt"

	"worldboss-bot/model"

	"github.com/bwmarrin/discordgo"
)

// IsAdministrator checks whether the user holds the Administrator permission
// in the given channel.
func IsAdministrator(rt model.Runtime, userID, channelID string) (bool, error) {
	perms, err := rt.MemberPermissions(userID, channelID)
	if err != nil {
		return false, fmt.Errorf("could not resolve permissions of user %s in channel %s: %w", userID, channelID, err)
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}
