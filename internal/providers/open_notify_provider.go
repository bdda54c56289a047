package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ISSPosition is the station's current location.
type ISSPosition struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// ISSPass is one predicted pass over a ground location.
type ISSPass struct {
	RiseTime        time.Time
	DurationMinutes int
}

// Astronaut is one person currently in space.
type Astronaut struct {
	Name  string `json:"name"`
	Craft string `json:"craft"`
}

// Astronauts is the crew currently in space.
type Astronauts struct {
	Number int         `json:"number"`
	People []Astronaut `json:"people"`
}

// OpenNotifyProvider fetches ISS data from the Open Notify API.
type OpenNotifyProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewOpenNotifyProvider() *OpenNotifyProvider {
	return &OpenNotifyProvider{
		BaseURL: "http://api.open-notify.org",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type issNowResponse struct {
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	ISSPosition struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"iss_position"`
}

// GetISSPosition fetches the station's current coordinates.
func (p *OpenNotifyProvider) GetISSPosition(ctx context.Context) (*ISSPosition, error) {
	var raw issNowResponse
	if err := p.doGET(ctx, "/iss-now.json", &raw); err != nil {
		return nil, err
	}
	if raw.Message != "success" {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("iss-now returned message %q", raw.Message),
		}
	}

	lat, err := strconv.ParseFloat(raw.ISSPosition.Latitude, 64)
	if err != nil {
		return nil, &ProviderError{Code: ErrCodeInvalidDataFormat, Message: "bad latitude", Err: err}
	}
	lon, err := strconv.ParseFloat(raw.ISSPosition.Longitude, 64)
	if err != nil {
		return nil, &ProviderError{Code: ErrCodeInvalidDataFormat, Message: "bad longitude", Err: err}
	}

	return &ISSPosition{
		Latitude:  lat,
		Longitude: lon,
		Timestamp: time.Unix(raw.Timestamp, 0),
	}, nil
}

type issPassResponse struct {
	Message  string `json:"message"`
	Response []struct {
		RiseTime int64 `json:"risetime"`
		Duration int   `json:"duration"` // seconds
	} `json:"response"`
}

// GetNextPass fetches the next predicted pass over the given coordinates.
func (p *OpenNotifyProvider) GetNextPass(ctx context.Context, lat, lon float64) (*ISSPass, error) {
	endpoint := fmt.Sprintf("/iss-pass.json?lat=%.4f&lon=%.4f&n=1", lat, lon)

	var raw issPassResponse
	if err := p.doGET(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if raw.Message != "success" || len(raw.Response) == 0 {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "iss-pass returned no passes",
		}
	}

	pass := raw.Response[0]
	return &ISSPass{
		RiseTime:        time.Unix(pass.RiseTime, 0),
		DurationMinutes: int(float64(pass.Duration)/60 + 0.5),
	}, nil
}

type astrosResponse struct {
	Message string      `json:"message"`
	Number  int         `json:"number"`
	People  []Astronaut `json:"people"`
}

// GetAstronauts fetches everyone currently in space.
func (p *OpenNotifyProvider) GetAstronauts(ctx context.Context) (*Astronauts, error) {
	var raw astrosResponse
	if err := p.doGET(ctx, "/astros.json", &raw); err != nil {
		return nil, err
	}
	if raw.Message != "success" {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("astros returned message %q", raw.Message),
		}
	}

	return &Astronauts{Number: raw.Number, People: raw.People}, nil
}

func (p *OpenNotifyProvider) doGET(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return &ProviderError{Code: ErrCodeHTTPFailure, Message: "failed to build request", Err: err}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{Code: ErrCodeHTTPFailure, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Code:    ErrCodeBadStatus,
			Message: fmt.Sprintf("unexpected status %d from Open Notify", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Code: ErrCodeInvalidDataFormat, Message: "failed to decode response", Err: err}
	}
	return nil
}
