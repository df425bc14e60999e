package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Sketch Rooms</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Sketch Rooms</span>
        <h1>Draw. Guess. Score.</h1>
        <p>This server hosts the room API and live event streams for the
        drawing game. Create a room, join it, and subscribe at
        <code>/ws/rooms/&lt;room-id&gt;</code>.</p>
      </header>

      <section class="panel">
        <h2>Endpoints</h2>
        <ul>
          <li><code>POST /api/rooms</code> create a room</li>
          <li><code>POST /api/rooms/:id/join</code> join with a user id and name</li>
          <li><code>POST /api/rooms/:id/guess</code> submit an answer</li>
          <li><code>POST /api/rooms/:id/draw</code> relay a drawing payload</li>
          <li><code>GET /ws/rooms/:id</code> live room snapshots and draw events</li>
        </ul>
      </section>
    </main>
  </body>
</html>`)
		return err
	})
}
