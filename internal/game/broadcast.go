package game

// Delivery is best-effort per recipient: frames are encoded once per codec
// and handed to each connection's buffered send channel without blocking.
// A stalled or closed connection costs its own frames only. All three
// helpers require h.mu to be held.

// broadcastAll delivers to every session, including the subject of the
// event; clients reconcile their own authoritative state from broadcasts.
func (h *Hub) broadcastAll(msg any) {
	h.fanout(msg, "")
}

// broadcastExcept delivers to every session but one.
func (h *Hub) broadcastExcept(skipID string, msg any) {
	h.fanout(msg, skipID)
}

func (h *Hub) fanout(msg any, skipID string) {
	encoded := make(map[string][]byte, 2)
	for id, session := range h.sessions {
		if id == skipID {
			continue
		}
		c := session.client
		data, ok := encoded[c.Codec.Name()]
		if !ok {
			var err error
			data, err = c.Codec.Marshal(msg)
			if err != nil {
				h.log.Error("encode broadcast", "codec", c.Codec.Name(), "error", err)
				continue
			}
			encoded[c.Codec.Name()] = data
		}
		if !c.enqueue(data) {
			h.log.Debug("send buffer full, dropping frame", "id", id)
		}
	}
}

// sendTo delivers one message to a single connection.
func (h *Hub) sendTo(c *Client, msg any) {
	data, err := c.Codec.Marshal(msg)
	if err != nil {
		h.log.Error("encode message", "codec", c.Codec.Name(), "error", err)
		return
	}
	if !c.enqueue(data) {
		h.log.Debug("send buffer full, dropping frame")
	}
}
