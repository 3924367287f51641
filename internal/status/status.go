// Package status tracks the single process-wide generation status the UI
// renders progress from.
package status

import "sync"

type Status string

const (
	Idle             Status = "idle"
	GeneratingText   Status = "generating_text"
	GeneratingImages Status = "generating_images"
	GeneratingVideo  Status = "generating_video"
	GeneratingAudio  Status = "generating_audio"
	EditingImage     Status = "editing_image"
	Complete         Status = "complete"
	Error            Status = "error"
)

// Busy reports whether an operation is in flight. A busy status blocks
// resubmission and keeps the progress overlay up.
func (s Status) Busy() bool {
	return s != Idle && s != Complete && s != Error
}

// Message returns the user-facing progress line for in-flight states.
func (s Status) Message() string {
	switch s {
	case GeneratingText:
		return "Escrevendo artigo otimizado e pesquisando dados..."
	case GeneratingImages:
		return "Criando imagens exclusivas com IA..."
	case GeneratingVideo:
		return "Renderizando vídeo com Veo (isso pode levar um minuto)..."
	case GeneratingAudio:
		return "Sintetizando áudio natural..."
	case EditingImage:
		return "Aplicando edições na imagem..."
	default:
		return ""
	}
}

// Tracker holds the current status and fans every transition out to
// subscribers. Exactly one status is active at a time.
type Tracker struct {
	mu      sync.Mutex
	current Status
	subs    []chan Status
}

func NewTracker() *Tracker {
	return &Tracker{current: Idle}
}

func (t *Tracker) Current() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Set transitions to the given status and notifies subscribers. A subscriber
// that has fallen behind misses the transition rather than blocking the
// pipeline.
func (t *Tracker) Set(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == s {
		return
	}
	t.current = s

	for _, sub := range t.subs {
		select {
		case sub <- s:
		default:
		}
	}
}

// Subscribe returns a channel receiving every future transition.
func (t *Tracker) Subscribe() <-chan Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	sub := make(chan Status, 8)
	t.subs = append(t.subs, sub)
	return sub
}
