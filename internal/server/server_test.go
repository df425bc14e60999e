package server

import (
	"net/http"
	"testing"

	"sketch-rooms/internal/config"
)

func TestCreateRoomEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["room_id"] == "" {
		t.Fatalf("expected room_id, got %#v", body)
	}
	if body["status"] != "waiting" {
		t.Fatalf("expected waiting status, got %#v", body["status"])
	}
}

func TestHomePage(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestGetRoom(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	room, ok := body["room"].(map[string]any)
	if !ok {
		t.Fatalf("expected room payload, got %#v", body)
	}
	if room["room_id"] != roomID {
		t.Fatalf("expected room %s, got %#v", roomID, room["room_id"])
	}
}

func TestGetRoomNotFound(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/room-404", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "room not found" {
		t.Fatalf("expected room not found message, got %#v", body)
	}
}

func TestListRooms(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	createRoom(t, ts)
	createRoom(t, ts)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["count"] != float64(2) {
		t.Fatalf("expected 2 rooms, got %#v", body["count"])
	}
}

func TestUpdateRoomStatus(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodPut, "/api/rooms/"+roomID, map[string]string{
		"status": "playing",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	room := body["room"].(map[string]any)
	if room["status"] != "playing" {
		t.Fatalf("expected playing status, got %#v", room["status"])
	}

	resp = doRequest(t, ts, http.MethodPut, "/api/rooms/"+roomID, map[string]string{
		"status": "finished",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDeleteRoom(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodDelete, "/api/rooms/"+roomID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodDelete, "/api/rooms/"+roomID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestJoinRoomEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"user_id": "u1",
		"name":    "Ada",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	players, ok := body["players"].([]any)
	if !ok || len(players) != 1 {
		t.Fatalf("expected one player, got %#v", body)
	}
}

func TestJoinRoomDuplicate(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	joinPlayer(t, ts, roomID, "u1", "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"user_id": "u1",
		"name":    "Ada",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "player is already in the room" {
		t.Fatalf("expected duplicate join message, got %#v", body)
	}
}

func TestJoinRoomFull(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	for _, user := range []string{"u1", "u2", "u3", "u4"} {
		joinPlayer(t, ts, roomID, user, "Player "+user)
	}

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"user_id": "u5",
		"name":    "Eve",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID, nil)
	room := decodeBody(t, resp)["room"].(map[string]any)
	players := room["players"].([]any)
	if len(players) != 4 {
		t.Fatalf("expected player list unchanged at 4, got %d", len(players))
	}
}

func TestJoinRoomValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"user_id": "u1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "name is required" {
		t.Fatalf("expected name message, got %#v", body)
	}
}

func TestQuitRoomEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	joinPlayer(t, ts, roomID, "u1", "Ada")
	joinPlayer(t, ts, roomID, "u2", "Bob")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/quit", map[string]string{
		"user_id": "u1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	players := body["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected one remaining player, got %#v", players)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/quit", map[string]string{
		"user_id": "u1",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestGuessEndpointAcknowledges(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	joinPlayer(t, ts, roomID, "u1", "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/guess", map[string]string{
		"user_id": "u1",
		"answer":  "cat",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["matched"] != false {
		t.Fatalf("expected unmatched ack, got %#v", body)
	}
}

func TestDrawEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomID := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/draw", map[string]any{
		"stroke": []int{1, 2, 3},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
