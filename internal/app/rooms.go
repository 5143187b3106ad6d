package app

import (
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"watchroom/internal/core"
	"watchroom/internal/domain"
)

var (
	ErrRoomFull    = errors.New("room full")
	ErrBadPassword = errors.New("bad password")
)

// Directory hands out room names and keeps per-room options plus the
// controller slot. Membership itself is always derived from the Registry;
// a room is active iff at least one session references it.
type Directory struct {
	mu         sync.RWMutex
	reg        *Registry
	opts       map[domain.RoomName]*domain.Options
	controller map[domain.RoomName]core.ConnectionID
}

func NewDirectory(reg *Registry) *Directory {
	return &Directory{
		reg:        reg,
		opts:       make(map[domain.RoomName]*domain.Options),
		controller: make(map[domain.RoomName]core.ConnectionID),
	}
}

// AllocateName scans ascending integer names from "0" and returns the first
// one with no current members. A name is never reused while anyone is in it.
func (d *Directory) AllocateName() domain.RoomName {
	for i := 0; ; i++ {
		name := domain.RoomName(strconv.Itoa(i))
		if !d.reg.RoomActive(name) {
			return name
		}
	}
}

// Configure stores the options for a room about to be joined. The password
// and capacity are replaced wholesale: an absent password clears any
// previous one. Tags are always overwritten with the supplied set.
func (d *Directory) Configure(room domain.RoomName, opts domain.Options) {
	if opts.Tags == nil {
		opts.Tags = []string{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opts[room] = &opts
	log.Info().Str("module", "app.rooms").Str("room", string(room)).
		Int("max_users", opts.MaxUsers).Bool("has_password", opts.Password != "").
		Strs("tags", opts.Tags).Msg("room configured")
}

// CanJoin gates entry on capacity and password. It never mutates state.
func (d *Directory) CanJoin(room domain.RoomName, password string) error {
	d.mu.RLock()
	opts := d.opts[room]
	d.mu.RUnlock()
	if opts == nil {
		return nil
	}
	if opts.MaxUsers > 0 && d.reg.CountByRoom(room) >= opts.MaxUsers {
		return ErrRoomFull
	}
	if opts.Password != "" && password != opts.Password {
		return ErrBadPassword
	}
	return nil
}

// OnEmptied clears capacity and password once the last member has left,
// freeing the name for reallocation with new options. Tags are kept.
func (d *Directory) OnEmptied(room domain.RoomName) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if opts, ok := d.opts[room]; ok {
		opts.MaxUsers = 0
		opts.Password = ""
	}
	delete(d.controller, room)
	log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room emptied, options cleared")
}

func (d *Directory) ControllerOf(room domain.RoomName) (core.ConnectionID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.controller[room]
	return id, ok
}

func (d *Directory) SetController(room domain.RoomName, id core.ConnectionID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controller[room] = id
}

func (d *Directory) ClearController(room domain.RoomName) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.controller, room)
}

// Snapshot builds the public room listing from live membership and stored
// options. Only active rooms are listed, smallest name first.
func (d *Directory) Snapshot() []core.RoomInfo {
	names := d.reg.ActiveRooms()
	sort.Slice(names, func(i, j int) bool {
		a, aErr := strconv.Atoi(string(names[i]))
		b, bErr := strconv.Atoi(string(names[j]))
		if aErr == nil && bErr == nil {
			return a < b
		}
		return names[i] < names[j]
	})

	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Map(names, func(name domain.RoomName, _ int) core.RoomInfo {
		info := core.RoomInfo{
			Name:      name,
			UserCount: d.reg.CountByRoom(name),
			Tags:      []string{},
		}
		if opts := d.opts[name]; opts != nil {
			info.MaxUsers = opts.MaxUsers
			info.HasPassword = opts.Password != ""
			info.Tags = opts.Tags
		}
		return info
	})
}
