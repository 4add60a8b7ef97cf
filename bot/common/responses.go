package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DeferResponse sends a deferred response to give more time for processing
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// Respond sends a plain message as an interaction response
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: message,
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithSuccess sends a success message
func RespondWithSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	return Respond(s, i, "✅ "+message, ephemeral)
}

// RespondWithError sends an ephemeral error message
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := Respond(s, i, "❌ "+message, true); err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// IsUserAdmin checks whether the invoking member has administrator permissions
func IsUserAdmin(s *discordgo.Session, guildID, userID string) bool {
	perms, err := s.UserChannelPermissions(userID, guildID)
	if err != nil {
		member, merr := s.GuildMember(guildID, userID)
		if merr != nil {
			log.Errorf("Error checking admin permissions for %s: %v", userID, err)
			return false
		}
		guild, gerr := s.Guild(guildID)
		if gerr != nil || guild == nil {
			return false
		}
		return guild.OwnerID == member.User.ID
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// GetDisplayName returns the guild nickname for a user, falling back to
// their username
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err != nil || user == nil {
		return "Unknown User"
	}
	return user.Username
}
