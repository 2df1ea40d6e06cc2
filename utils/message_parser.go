package utils

import (
	"fmt"
	"regexp"
)

var (
	channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)
	roleMentionRe    = regexp.MustCompile(`^<@&(\d+)>$`)
	snowflakeRe      = regexp.MustCompile(`^\d+$`)
)

// ParseChannelMention accepts a channel mention (<#id>) or a raw channel id.
func ParseChannelMention(arg string) (string, error) {
	return parseMention(arg, channelMentionRe, "channel")
}

// ParseRoleMention accepts a role mention (<@&id>) or a raw role id.
func ParseRoleMention(arg string) (string, error) {
	return parseMention(arg, roleMentionRe, "role")
}

func parseMention(arg string, re *regexp.Regexp, kind string) (string, error) {
	if match := re.FindStringSubmatch(arg); len(match) == 2 {
		return match[1], nil
	}
	if snowflakeRe.MatchString(arg) {
		return arg, nil
	}
	return "", fmt.Errorf("`%s` is not a %s mention or id", arg, kind)
}

// RoleMention renders the ping syntax for a role.
func RoleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// ChannelMention renders the link syntax for a channel.
func ChannelMention(channelID string) string {
	return "<#" + channelID + ">"
}
