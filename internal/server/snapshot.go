package server

// snapshot builds the resolved room view sent to subscribers. Player and
// drawer references are expanded to their display names; the current round
// carries its word so the drawer's client can show it. Callers must hold
// the room lock.
func snapshot(room *Room) map[string]any {
	players := make([]map[string]any, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, map[string]any{
			"user_id": player.UserID,
			"name":    player.Name,
			"score":   player.Score,
		})
	}

	var current map[string]any
	if round := currentRound(room); round != nil {
		guesses := make([]map[string]any, 0, len(round.Guesses))
		for _, guess := range round.Guesses {
			name := guess.UserID
			if player := findPlayer(room, guess.UserID); player != nil {
				name = player.Name
			}
			guesses = append(guesses, map[string]any{
				"user_id": guess.UserID,
				"name":    name,
				"guess":   guess.Text,
				"correct": guess.Correct,
			})
		}
		drawerName := round.Drawer
		if drawer := findPlayer(room, round.Drawer); drawer != nil {
			drawerName = drawer.Name
		}
		current = map[string]any{
			"number":      round.Number,
			"drawer_id":   round.Drawer,
			"drawer_name": drawerName,
			"word":        round.Word,
			"status":      round.Status,
			"guesses":     guesses,
		}
	}

	return map[string]any{
		"room_id":       room.ID,
		"status":        room.Status,
		"players":       players,
		"rounds_played": len(room.Rounds),
		"current_round": current,
	}
}
