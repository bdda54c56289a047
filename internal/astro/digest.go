package astro

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/providers"
)

// Discord blurple-ish blue used since the first webhook version
const digestColor = 3447003

const maxExplanationRunes = 200

// EmbedField is one name/value pair in the digest embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Digest is the assembled daily astronomy update, delivery-agnostic: the
// bot package turns it into a webhook payload or a channel message.
type Digest struct {
	Content     string
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	ImageURL    string
	FooterText  string
	Timestamp   time.Time
}

// APODSource provides NASA's picture of the day.
type APODSource interface {
	GetAPOD(ctx context.Context) (*providers.APOD, error)
}

// ISSSource provides station position, pass predictions, and crew.
type ISSSource interface {
	GetISSPosition(ctx context.Context) (*providers.ISSPosition, error)
	GetNextPass(ctx context.Context, lat, lon float64) (*providers.ISSPass, error)
	GetAstronauts(ctx context.Context) (*providers.Astronauts, error)
}

// Builder assembles the daily digest. Provider failures drop their field
// from the embed but never fail the digest as a whole.
type Builder struct {
	apod     APODSource
	iss      ISSSource
	location *time.Location
	now      func() time.Time
}

// NewBuilder creates a digest builder. The location is used for pass-time
// formatting and the viewing tip (Asia/Kolkata in production).
func NewBuilder(apod APODSource, iss ISSSource, location *time.Location) *Builder {
	if location == nil {
		location = time.UTC
	}
	return &Builder{
		apod:     apod,
		iss:      iss,
		location: location,
		now:      time.Now,
	}
}

// Build fetches all content sources in parallel and assembles the embed.
func (b *Builder) Build(ctx context.Context) *Digest {
	var (
		apod   *providers.APOD
		pos    *providers.ISSPosition
		pass   *providers.ISSPass
		astros *providers.Astronauts
	)

	// Each fetch is independent; a failure is logged and its field dropped.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if apod, err = b.apod.GetAPOD(gctx); err != nil {
			logging.Warn("APOD fetch failed", "error", err.Error())
			apod = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pos, err = b.iss.GetISSPosition(gctx); err != nil {
			logging.Warn("ISS position fetch failed", "error", err.Error())
			pos = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pass, err = b.iss.GetNextPass(gctx, ImphalLat, ImphalLon); err != nil {
			logging.Warn("ISS pass fetch failed", "error", err.Error())
			pass = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if astros, err = b.iss.GetAstronauts(gctx); err != nil {
			logging.Warn("Astronauts fetch failed", "error", err.Error())
			astros = nil
		}
		return nil
	})
	_ = g.Wait()

	now := b.now().In(b.location)
	digest := &Digest{
		Content:     "🌟 **Good morning, space enthusiasts!** Here's your daily astronomy update:",
		Title:       "🌌 Daily Astronomy Update",
		Description: "Your daily dose of cosmic wonders!",
		Color:       digestColor,
		FooterText:  "Manipur Astronomical Society • Data from NASA & Open Notify APIs",
		Timestamp:   now,
	}

	if apod != nil {
		digest.Fields = append(digest.Fields, EmbedField{
			Name:  "🖼️ NASA Astronomy Picture of the Day",
			Value: fmt.Sprintf("**%s**\n%s", apod.Title, truncate(apod.Explanation, maxExplanationRunes)),
		})
		if apod.MediaType == "image" {
			digest.ImageURL = apod.HDURL
			if digest.ImageURL == "" {
				digest.ImageURL = apod.URL
			}
		}
		if apod.Copyright != "" {
			digest.Fields = append(digest.Fields, EmbedField{
				Name:   "📸 Credit",
				Value:  apod.Copyright,
				Inline: true,
			})
		}
	}

	if pos != nil {
		distance := Haversine(ImphalLat, ImphalLon, pos.Latitude, pos.Longitude)
		digest.Fields = append(digest.Fields, EmbedField{
			Name: "🛰️ International Space Station",
			Value: fmt.Sprintf("**Current Location:** %.2f°, %.2f°\n**Distance from Manipur:** %s km",
				pos.Latitude, pos.Longitude, formatThousands(int(distance+0.5))),
			Inline: true,
		})
	}

	if pass != nil {
		digest.Fields = append(digest.Fields, EmbedField{
			Name: "👀 Next ISS Pass Over Manipur",
			Value: fmt.Sprintf("**When:** %s\n**Duration:** %d minutes\n🔭 *Look up and wave!*",
				pass.RiseTime.In(b.location).Format("Monday, January 2, 3:04 PM"),
				pass.DurationMinutes),
			Inline: true,
		})
	}

	phaseName, phaseEmoji := MoonPhase(now)
	digest.Fields = append(digest.Fields, EmbedField{
		Name:   fmt.Sprintf("%s Moon Phase", phaseEmoji),
		Value:  fmt.Sprintf("**Current:** %s", phaseName),
		Inline: true,
	})

	if astros != nil {
		var names []string
		for _, person := range astros.People {
			names = append(names, fmt.Sprintf("• %s (%s)", person.Name, person.Craft))
		}
		digest.Fields = append(digest.Fields, EmbedField{
			Name:  "👨‍🚀 People Currently in Space",
			Value: fmt.Sprintf("**Total:** %d\n%s", astros.Number, strings.Join(names, "\n")),
		})
	}

	digest.Fields = append(digest.Fields, EmbedField{
		Name:  "🔭 Today's Viewing Tip",
		Value: viewingTip(now.Hour()),
	})

	return digest
}

func viewingTip(hour int) string {
	if hour >= 18 || hour <= 6 {
		return "🌃 **Perfect time for stargazing!** Clear skies tonight in Manipur."
	}
	return "☀️ **Daytime astronomy:** Try observing the Moon if visible, or plan tonight's viewing session."
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
