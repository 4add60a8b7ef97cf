package service

import (
	"context"
	"fmt"

	"dugout/models"
)

// configService implements the ConfigService interface
type configService struct {
	uowFactory UnitOfWorkFactory
}

// NewConfigService creates a new config service
func NewConfigService(uowFactory UnitOfWorkFactory) ConfigService {
	return &configService{
		uowFactory: uowFactory,
	}
}

func (s *configService) Get(ctx context.Context, kind EntityKind, id int64, field string) (any, error) {
	switch kind {
	case EntityChannel:
		f, err := channelField(field)
		if err != nil {
			return nil, err
		}
		channel, err := s.ChannelSettings(ctx, id)
		if err != nil {
			return nil, err
		}
		return f.get(channel), nil

	case EntityServer:
		f, err := serverField(field)
		if err != nil {
			return nil, err
		}
		server, err := s.ServerSettings(ctx, id)
		if err != nil {
			return nil, err
		}
		return f.get(server), nil

	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", ErrUnknownField, kind)
	}
}

func (s *configService) Set(ctx context.Context, kind EntityKind, id int64, field string, raw string) error {
	switch kind {
	case EntityChannel:
		f, err := channelField(field)
		if err != nil {
			return err
		}
		value, err := f.Parse(raw)
		if err != nil {
			return err
		}
		if err := f.Validate(value); err != nil {
			return err
		}
		return s.setChannelField(ctx, id, f, value)

	case EntityServer:
		f, err := serverField(field)
		if err != nil {
			return err
		}
		value, err := f.Parse(raw)
		if err != nil {
			return err
		}
		if err := f.Validate(value); err != nil {
			return err
		}
		return s.setServerField(ctx, id, f, value)

	default:
		return fmt.Errorf("%w: unknown entity kind %q", ErrUnknownField, kind)
	}
}

func (s *configService) setChannelField(ctx context.Context, id int64, f *ConfigField[models.Channel], value any) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Ensure the row exists, then write only the addressed column.
	// Concurrent sets of different fields on the same channel must not
	// clobber each other with stale sibling values.
	if _, err := uow.ChannelRepository().GetOrCreate(ctx, id); err != nil {
		return fmt.Errorf("failed to get or create channel settings: %w", err)
	}

	if err := uow.ChannelRepository().UpdateField(ctx, id, f.Column, value); err != nil {
		return fmt.Errorf("failed to update channel settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *configService) setServerField(ctx context.Context, id int64, f *ConfigField[models.Server], value any) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := uow.ServerRepository().GetOrCreate(ctx, id); err != nil {
		return fmt.Errorf("failed to get or create server settings: %w", err)
	}

	if err := uow.ServerRepository().UpdateField(ctx, id, f.Column, value); err != nil {
		return fmt.Errorf("failed to update server settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ChannelSettings returns the stored channel record, or defaults when the
// channel has never been configured
func (s *configService) ChannelSettings(ctx context.Context, id int64) (*models.Channel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	channel, err := uow.ChannelRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if channel == nil {
		channel = models.NewChannel(id)
	}
	return channel, nil
}

// ServerSettings returns the stored server record, or defaults when the
// server has never been configured
func (s *configService) ServerSettings(ctx context.Context, id int64) (*models.Server, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	server, err := uow.ServerRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if server == nil {
		server = models.NewServer(id)
	}
	return server, nil
}
