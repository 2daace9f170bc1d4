// Package speech prepares voice-playback configuration for clients. No audio
// is synthesized server-side; the handler validates the text and returns the
// parameters a device speech engine needs.
package speech

import (
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
	"github.com/healthspeak/healthspeak/internal/sanitize"
)

// maxSpeechTextLength bounds text submitted for playback.
const maxSpeechTextLength = 5000

// Speaking-rate clamp. 1.0 is the engine's natural rate.
const (
	minSpeed     = 0.5
	maxSpeed     = 2.0
	defaultSpeed = 1.0
)

const defaultLanguage = "en-US"

// wordsPerMinute is the assumed natural speaking rate used for the duration
// estimate.
const wordsPerMinute = 150.0

// Voices is the candidate voice list. Static: actual availability depends on
// the client device and is not queried here.
var Voices = []Voice{
	{Name: "en-US-standard-female", Language: "en-US", Gender: "female"},
	{Name: "en-US-standard-male", Language: "en-US", Gender: "male"},
	{Name: "en-GB-standard-female", Language: "en-GB", Gender: "female"},
	{Name: "en-IN-standard-female", Language: "en-IN", Gender: "female"},
	{Name: "en-IN-standard-male", Language: "en-IN", Gender: "male"},
	{Name: "hi-IN-standard-female", Language: "hi-IN", Gender: "female"},
	{Name: "es-ES-standard-female", Language: "es-ES", Gender: "female"},
}

type Voice struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender"`
}

// PlaybackConfig is what a client speech engine needs to read the text aloud.
type PlaybackConfig struct {
	Text             string  `json:"text"`
	Voice            string  `json:"voice"`
	Speed            float64 `json:"speed"`
	Language         string  `json:"language"`
	TextLength       int     `json:"textLength"`
	EstimatedSeconds int     `json:"estimatedSeconds"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/tts", h.Prepare)
	e.GET("/tts/voices", h.ListVoices)
}

type prepareRequest struct {
	Text     string  `json:"text"`
	Voice    string  `json:"voice,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
	Language string  `json:"language,omitempty"`
}

func (h *Handler) Prepare(c echo.Context) error {
	var req prepareRequest
	if err := c.Bind(&req); err != nil {
		return respond.NewValidationError("malformed request body", err.Error())
	}

	text := sanitize.Clean(req.Text)
	if res := sanitize.ValidateText(text, maxSpeechTextLength); !res.IsValid {
		return respond.NewValidationError("invalid speech text", res.Errors...)
	}

	speed := req.Speed
	if speed == 0 {
		speed = defaultSpeed
	}
	if speed < minSpeed {
		speed = minSpeed
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	voice := req.Voice
	if voice == "" {
		voice = defaultVoiceFor(language)
	}

	words := len(strings.Fields(text))
	seconds := int(math.Ceil(float64(words) / (wordsPerMinute * speed) * 60))

	return respond.OK(c, http.StatusOK, PlaybackConfig{
		Text:             text,
		Voice:            voice,
		Speed:            speed,
		Language:         language,
		TextLength:       len(text),
		EstimatedSeconds: seconds,
	})
}

func (h *Handler) ListVoices(c echo.Context) error {
	return respond.OK(c, http.StatusOK, Voices)
}

// defaultVoiceFor picks the first listed voice for the language, falling back
// to the first voice overall.
func defaultVoiceFor(language string) string {
	for _, v := range Voices {
		if strings.EqualFold(v.Language, language) {
			return v.Name
		}
	}
	return Voices[0].Name
}
