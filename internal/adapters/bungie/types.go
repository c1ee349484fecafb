package bungie

import (
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the standard Bungie.net platform response wrapper.
type envelope struct {
	Response        json.RawMessage `json:"Response"`
	ErrorCode       int             `json:"ErrorCode"`
	ErrorStatus     string          `json:"ErrorStatus"`
	Message         string          `json:"Message"`
	ThrottleSeconds int             `json:"ThrottleSeconds"`
}

// Platform error codes the app reacts to
const (
	errorCodeSuccess        = 1
	errorCodeSystemDisabled = 5
)

// manifestInfo is the response of Destiny2/Manifest/.
type manifestInfo struct {
	Version                        string                       `json:"version"`
	JSONWorldComponentContentPaths map[string]map[string]string `json:"jsonWorldComponentContentPaths"`
}

type displayProperties struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	HasIcon     bool   `json:"hasIcon"`
}

// classDefinition is the slice of DestinyClassDefinition the app keeps.
type classDefinition struct {
	DisplayProperties displayProperties `json:"displayProperties"`
	ClassType         int               `json:"classType"`
	Hash              uint32            `json:"hash"`
	Redacted          bool              `json:"redacted"`
}

// membershipsResponse is the response of User/GetMembershipsForCurrentUser/.
type membershipsResponse struct {
	DestinyMemberships  []destinyMembership `json:"destinyMemberships"`
	PrimaryMembershipID string              `json:"primaryMembershipId"`
}

type destinyMembership struct {
	MembershipID      string `json:"membershipId"`
	MembershipType    int    `json:"membershipType"`
	DisplayName       string `json:"displayName"`
	CrossSaveOverride int    `json:"crossSaveOverride"`
}

// profileResponse carries components 200 (characters) and 104 (profile
// progression) of Destiny2/{type}/Profile/{id}/.
type profileResponse struct {
	Characters struct {
		Data map[string]characterComponent `json:"data"`
	} `json:"characters"`
	ProfileProgression struct {
		Data struct {
			SeasonalArtifact struct {
				PowerBonus int `json:"powerBonus"`
			} `json:"seasonalArtifact"`
		} `json:"data"`
	} `json:"profileProgression"`
}

type characterComponent struct {
	CharacterID    string    `json:"characterId"`
	Light          int       `json:"light"`
	ClassHash      uint32    `json:"classHash"`
	EmblemColor    rgba      `json:"emblemBackgroundColor"`
	DateLastPlayed time.Time `json:"dateLastPlayed"`
}

type rgba struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
	Alpha uint8 `json:"alpha"`
}

// Hex renders the color as #rrggbb for lipgloss.
func (c rgba) Hex() string {
	if c.Red == 0 && c.Green == 0 && c.Blue == 0 {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}
