package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "config"
	FilePath    string `json:"filePath"`    // Path to JSON file (config type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

const builtInGroup = "Built-in Scenes"

// BuiltInScenes lists the scenes compiled into the binary
func BuiltInScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "random",
			Name:        "Random Spheres",
			Description: "Ground sphere, a seeded grid of small spheres and three large feature spheres",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "simple",
			Name:        "Simple",
			Description: "Single diffuse sphere under the sky",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "three",
			Name:        "Three Spheres",
			Description: "Diffuse, hollow glass and metal spheres on a ground sphere",
			Group:       builtInGroup,
			Type:        "builtin",
		},
	}
}

// Create builds a scene by ID. Built-in IDs are listed by BuiltInScenes;
// "config:<path>" loads a JSON scene file.
func Create(id string, seed uint64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if path, ok := strings.CutPrefix(id, "config:"); ok {
		return LoadScene(path, cameraOverrides...)
	}
	switch id {
	case "random":
		return NewRandomSpheresScene(seed, cameraOverrides...)
	case "simple":
		return NewSimpleScene(cameraOverrides...)
	case "three":
		return NewThreeSpheresScene(cameraOverrides...)
	default:
		return nil, fmt.Errorf("unknown scene %q", id)
	}
}

// ListConfigScenes scans dir for JSON scene files. A missing directory yields an empty list.
func ListConfigScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseConfigMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseConfigMetadata reads the name and description of a JSON scene file
// without building it. The name falls back to the file name.
func ParseConfigMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "config:" + filePath,
		Name:     titleCase(nameWithoutExt),
		Group:    "Config Scenes",
		Type:     "config",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("reading %s: %w", filePath, err)
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	if header.Group != "" {
		info.Group = header.Group
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns built-in and config scenes, built-in group first
// and the remaining groups alphabetically
func ListAllScenes(dir string) ([]SceneGroup, error) {
	configScenes, err := ListConfigScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list config scenes: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(BuiltInScenes(), configScenes...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtInGroup, Scenes: groupMap[builtInGroup]}}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(string(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
