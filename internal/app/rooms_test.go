package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"watchroom/internal/domain"
)

func TestDirectory_AllocateNameSkipsActiveRooms(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	// Given empty state, the first name is "0"
	req.Equal(domain.RoomName("0"), dir.AllocateName())

	// When "0" and "1" have members
	reg.Register("a", "u1", "0")
	reg.Register("b", "u2", "1")

	// Then the next free name is "2"
	req.Equal(domain.RoomName("2"), dir.AllocateName())

	// And a vacated name is reused
	reg.Remove("a")
	req.Equal(domain.RoomName("0"), dir.AllocateName())
}

func TestDirectory_CanJoinCapacityGate(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	dir.Configure("0", domain.Options{MaxUsers: 1})

	req.NoError(dir.CanJoin("0", ""))
	reg.Register("a", "u1", "0")
	req.ErrorIs(dir.CanJoin("0", ""), ErrRoomFull)
}

func TestDirectory_CanJoinPasswordGate(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	dir.Configure("0", domain.Options{Password: "abc"})

	req.ErrorIs(dir.CanJoin("0", "wrong"), ErrBadPassword)
	req.ErrorIs(dir.CanJoin("0", ""), ErrBadPassword)
	req.NoError(dir.CanJoin("0", "abc"))

	// Unconfigured rooms are always open
	req.NoError(dir.CanJoin("9", "anything"))
}

func TestDirectory_ReconfigureClearsAbsentPassword(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	dir.Configure("0", domain.Options{Password: "abc"})
	dir.Configure("0", domain.Options{})

	req.NoError(dir.CanJoin("0", ""))
}

func TestDirectory_OnEmptiedClearsCapacityAndPasswordButKeepsTags(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	dir.Configure("0", domain.Options{MaxUsers: 1, Password: "abc", Tags: []string{"anime"}})
	reg.Register("a", "u1", "0")
	reg.Remove("a")

	dir.OnEmptied("0")

	// Capacity and password gone
	req.NoError(dir.CanJoin("0", ""))
	reg.Register("b", "u2", "0")
	req.NoError(dir.CanJoin("0", ""))

	// Tags survive into the listing
	snap := dir.Snapshot()
	req.Len(snap, 1)
	req.Equal([]string{"anime"}, snap[0].Tags)
	req.False(snap[0].HasPassword)
	req.Zero(snap[0].MaxUsers)
}

func TestDirectory_SnapshotCountsMatchRegistry(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	dir.Configure("0", domain.Options{MaxUsers: 5, Password: "x", Tags: []string{"movies"}})
	reg.Register("a", "u1", "0")
	reg.Register("b", "u2", "0")
	reg.Register("c", "u3", "2")

	snap := dir.Snapshot()
	req.Len(snap, 2)

	req.Equal(domain.RoomName("0"), snap[0].Name)
	req.Equal(2, snap[0].UserCount)
	req.Equal(5, snap[0].MaxUsers)
	req.True(snap[0].HasPassword)
	req.Equal([]string{"movies"}, snap[0].Tags)

	req.Equal(domain.RoomName("2"), snap[1].Name)
	req.Equal(1, snap[1].UserCount)
	req.False(snap[1].HasPassword)
	req.Empty(snap[1].Tags)
}

func TestDirectory_SnapshotOrdersNamesNumerically(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	dir := NewDirectory(reg)

	reg.Register("a", "u1", "10")
	reg.Register("b", "u2", "2")
	reg.Register("c", "u3", "0")

	snap := dir.Snapshot()
	req.Equal(domain.RoomName("0"), snap[0].Name)
	req.Equal(domain.RoomName("2"), snap[1].Name)
	req.Equal(domain.RoomName("10"), snap[2].Name)
}
