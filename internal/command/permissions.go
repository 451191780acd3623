package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// PermissionNames maps permission bits to their display names, used when
// telling a requester what a command requires.
var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:  "Create Instant Invite",
	discordgo.PermissionKickMembers:          "Kick Members",
	discordgo.PermissionBanMembers:           "Ban Members",
	discordgo.PermissionAdministrator:        "Administrator",
	discordgo.PermissionManageChannels:       "Manage Channels",
	discordgo.PermissionManageServer:         "Manage Server",
	discordgo.PermissionAddReactions:         "Add Reactions",
	discordgo.PermissionViewAuditLogs:        "View Audit Logs",
	discordgo.PermissionViewChannel:          "View Channel",
	discordgo.PermissionSendMessages:         "Send Messages",
	discordgo.PermissionSendTTSMessages:      "Send TTS Messages",
	discordgo.PermissionManageMessages:       "Manage Messages",
	discordgo.PermissionEmbedLinks:           "Embed Links",
	discordgo.PermissionAttachFiles:          "Attach Files",
	discordgo.PermissionReadMessageHistory:   "Read Message History",
	discordgo.PermissionMentionEveryone:      "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:    "Use External Emojis",
	discordgo.PermissionManageThreads:        "Manage Threads",
	discordgo.PermissionCreatePublicThreads:  "Create Public Threads",
	discordgo.PermissionCreatePrivateThreads: "Create Private Threads",
	discordgo.PermissionSendMessagesInThreads: "Send Messages in Threads",
	discordgo.PermissionChangeNickname:       "Change Nickname",
	discordgo.PermissionManageNicknames:      "Manage Nicknames",
	discordgo.PermissionManageRoles:          "Manage Roles",
	discordgo.PermissionManageWebhooks:       "Manage Webhooks",
	discordgo.PermissionManageEmojis:         "Manage Expressions",
	discordgo.PermissionManageEvents:         "Manage Events",
	discordgo.PermissionModerateMembers:      "Moderate Members",
	discordgo.PermissionVoiceConnect:         "Connect to Voice Channel",
	discordgo.PermissionVoiceSpeak:           "Speak",
	discordgo.PermissionVoiceMuteMembers:     "Mute Members",
	discordgo.PermissionVoiceDeafenMembers:   "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:     "Move Members",
	discordgo.PermissionVoicePrioritySpeaker: "Priority Speaker",
	discordgo.PermissionVoiceStreamVideo:     "Stream Video",
	discordgo.PermissionUseActivities:        "Use Embedded Activities",
	discordgo.PermissionUseSlashCommands:     "Use Application Commands",
	discordgo.PermissionVoiceRequestToSpeak:  "Request to Speak",
	discordgo.PermissionViewGuildInsights:    "View Guild Insights",
}

// PermissionName returns the display name for a bit, falling back to hex.
func PermissionName(p int64) string {
	if name, ok := PermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}

// MissingPermissions returns the names of required permissions not present
// in held. Every listed permission is required; administrators implicitly
// hold everything. An empty required list never rejects.
func MissingPermissions(required []int64, held int64) []string {
	if len(required) == 0 {
		return nil
	}
	if held&discordgo.PermissionAdministrator != 0 {
		return nil
	}
	var missing []string
	for _, p := range required {
		if held&p != p {
			missing = append(missing, PermissionName(p))
		}
	}
	return missing
}

// HeldNames returns the display names of the known permission bits set in held.
func HeldNames(held int64) []string {
	var names []string
	for bit, name := range PermissionNames {
		if held&bit == bit {
			names = append(names, name)
		}
	}
	return names
}
