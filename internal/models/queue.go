package models

// Queue is the body of GET /queue and of every /ws/queue frame.
type Queue struct {
	Balancing bool        `json:"balancing"`
	Items     []QueueItem `json:"items"`
}

// QueueItem is one entry of the play queue. Index 0 is the item playing.
type QueueItem struct {
	Downloading bool   `json:"downloading"`
	Error       string `json:"error"`
	ID          uint32 `json:"id"`
	Media       Media  `json:"media"`
	Progress    int    `json:"progress"`
}

// Failed reports whether the server gave up on the item.
func (i QueueItem) Failed() bool { return i.Error != "" }

// Ready reports whether the item can be played.
func (i QueueItem) Ready() bool { return !i.Downloading && i.Error == "" }

// Len returns the number of queued items.
func (q Queue) Len() int { return len(q.Items) }

// Current returns the item at the head of the queue.
func (q Queue) Current() (QueueItem, bool) {
	if len(q.Items) == 0 {
		return QueueItem{}, false
	}
	return q.Items[0], true
}
