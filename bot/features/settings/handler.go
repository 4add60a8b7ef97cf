package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dugout/bot/common"
	"dugout/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleEntity handles /config channel and /config server. Without a
// value option the command reads the field; with one it writes it.
func (f *Feature) handleEntity(s *discordgo.Session, i *discordgo.InteractionCreate, kind service.EntityKind) {
	ctx := context.Background()

	var entityID int64
	var err error
	switch kind {
	case service.EntityChannel:
		entityID, err = strconv.ParseInt(i.ChannelID, 10, 64)
	case service.EntityServer:
		entityID, err = strconv.ParseInt(i.GuildID, 10, 64)
	}
	if err != nil {
		log.Errorf("Failed to parse entity ID for %s config: %v", kind, err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	var field, value string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "field":
			field = opt.StringValue()
		case "value":
			value = opt.StringValue()
		}
	}

	if value == "" {
		f.handleGet(ctx, s, i, kind, entityID, field)
		return
	}

	// Writes require admin permissions, reads do not
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to change settings")
		return
	}

	f.handleSet(ctx, s, i, kind, entityID, field, value)
}

func (f *Feature) handleGet(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, kind service.EntityKind, entityID int64, field string) {
	current, err := f.configService.Get(ctx, kind, entityID, field)
	if err != nil {
		if errors.Is(err, service.ErrUnknownField) {
			common.RespondWithError(s, i, fmt.Sprintf("Unknown %s setting `%s`. Available: %s",
				kind, field, strings.Join(service.FieldNames(kind), ", ")))
			return
		}
		log.Errorf("Failed to read %s setting %s for %d: %v", kind, field, entityID, err)
		common.RespondWithError(s, i, "Failed to read setting")
		return
	}

	message := fmt.Sprintf("`%s` is currently `%v`", field, current)
	if err := common.Respond(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to config command: %v", err)
	}
}

func (f *Feature) handleSet(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, kind service.EntityKind, entityID int64, field, value string) {
	if err := f.configService.Set(ctx, kind, entityID, field, value); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownField):
			common.RespondWithError(s, i, fmt.Sprintf("Unknown %s setting `%s`. Available: %s",
				kind, field, strings.Join(service.FieldNames(kind), ", ")))
		case errors.Is(err, service.ErrInvalidValue):
			common.RespondWithError(s, i, fmt.Sprintf("`%s` is not a valid value for `%s`", value, field))
		default:
			log.Errorf("Failed to update %s setting %s for %d: %v", kind, field, entityID, err)
			common.RespondWithError(s, i, "Failed to update setting")
		}
		return
	}

	message := fmt.Sprintf("`%s` updated to `%s`", field, value)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to config command: %v", err)
	}
}
