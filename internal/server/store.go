package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Store is the authoritative in-memory registry of rooms. Every mutation of
// a room runs inside UpdateRoom under that room's own lock, so concurrent
// operations against the same room serialize while unrelated rooms proceed
// independently.
type Store struct {
	mu     sync.Mutex
	nextID int
	rooms  map[string]*roomEntry
}

type roomEntry struct {
	mu   sync.Mutex
	room *Room
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		rooms:  make(map[string]*roomEntry),
	}
}

func (s *Store) CreateRoom() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("room-%d", s.nextID)
	s.nextID++
	room := &Room{
		ID:        id,
		Status:    roomStatusWaiting,
		CreatedAt: timeNowUTC(),
	}
	s.rooms[id] = &roomEntry{room: room}
	return room
}

func (s *Store) entry(id string) (*roomEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rooms[id]
	return entry, ok
}

// UpdateRoom applies fn to the room under the room's lock. Returning an
// error from fn aborts the update; any mutations fn made are kept, so fn
// must not modify the room before deciding to fail.
func (s *Store) UpdateRoom(id string, fn func(room *Room) error) (*Room, error) {
	entry, ok := s.entry(id)
	if !ok {
		return nil, ErrRoomNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := fn(entry.room); err != nil {
		return nil, err
	}
	return entry.room, nil
}

// ViewRoom runs fn with read access to the room under the room's lock.
func (s *Store) ViewRoom(id string, fn func(room *Room)) error {
	entry, ok := s.entry(id)
	if !ok {
		return ErrRoomNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.room)
	return nil
}

func (s *Store) HasRoom(id string) bool {
	_, ok := s.entry(id)
	return ok
}

func (s *Store) DeleteRoom(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return false
	}
	delete(s.rooms, id)
	return true
}

// UpdateRoomID rebinds a room to the id assigned by the database mirror.
func (s *Store) UpdateRoomID(room *Room, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room.ID == newID {
		return
	}
	entry, ok := s.rooms[room.ID]
	if !ok {
		return
	}
	delete(s.rooms, room.ID)
	room.ID = newID
	s.rooms[newID] = entry
}

func (s *Store) ListRoomSummaries() []RoomSummary {
	s.mu.Lock()
	entries := make([]*roomEntry, 0, len(s.rooms))
	for _, entry := range s.rooms {
		entries = append(entries, entry)
	}
	s.mu.Unlock()

	list := make([]RoomSummary, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		list = append(list, RoomSummary{
			ID:      entry.room.ID,
			Status:  entry.room.Status,
			Players: len(entry.room.Players),
			Rounds:  len(entry.room.Rounds),
		})
		entry.mu.Unlock()
	}
	sort.Slice(list, func(i, j int) bool {
		return roomSortKey(list[i].ID) < roomSortKey(list[j].ID)
	})
	return list
}

func roomSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
