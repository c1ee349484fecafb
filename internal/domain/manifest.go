package domain

// ManifestStage identifies one step of the manifest refresh pipeline. Each
// stage notification overwrites the previous one in the status line.
type ManifestStage int

const (
	StageIdle ManifestStage = iota
	StageCheckVersion
	StageLoadCached
	StageFetchRemote
	StageParse
	StageStore
	StageReady
	StageError
)

// String returns the status-line text for the stage.
func (s ManifestStage) String() string {
	switch s {
	case StageCheckVersion:
		return "Checking manifest version"
	case StageLoadCached:
		return "Loading cached manifest"
	case StageFetchRemote:
		return "Fetching manifest from Bungie"
	case StageParse:
		return "Parsing manifest"
	case StageStore:
		return "Storing manifest"
	case StageReady:
		return "Manifest ready"
	case StageError:
		return "Manifest fetch failed"
	default:
		return ""
	}
}

// Manifest is the cached slice of the Destiny game-data manifest the app
// needs: just enough definitions to name character classes.
type Manifest struct {
	Version    string
	ClassNames map[uint32]string // class definition hash -> name
}

// ClassName resolves a class definition hash, falling back to "Guardian".
func (m *Manifest) ClassName(hash uint32) string {
	if m == nil {
		return "Guardian"
	}
	if name, ok := m.ClassNames[hash]; ok && name != "" {
		return name
	}
	return "Guardian"
}
