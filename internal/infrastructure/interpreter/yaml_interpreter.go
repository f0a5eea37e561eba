// Package interpreter renders interpretation text from per-language YAML
// translation files. One file per language, loaded on first use and cached.
package interpreter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/astroconsulta/platform-api/internal/api/metrics"
	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// translationFile mirrors the YAML layout of one language file.
type translationFile struct {
	PlanetsInSigns  map[string]map[string]string `yaml:"planets_in_signs"`
	PlanetsInHouses map[string]map[string]string `yaml:"planets_in_houses"`
	Aspects         map[string]string            `yaml:"aspects"`
	SolarSet        map[string]string            `yaml:"solar_set"`
	Sections        map[string]string            `yaml:"sections"`
}

// YAMLInterpreter implements ports.Interpreter from translation files on disk.
type YAMLInterpreter struct {
	dir string
	log zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*translationFile
}

func NewYAMLInterpreter(dir string, log zerolog.Logger) *YAMLInterpreter {
	return &YAMLInterpreter{
		dir:   dir,
		log:   log,
		cache: make(map[string]*translationFile),
	}
}

func (y *YAMLInterpreter) InterpretNatalChart(_ context.Context, chart *domain.NatalChart, language string, level ports.DetailLevel) (map[string]string, error) {
	tf, err := y.load(language)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	for _, planet := range chart.Data.Planets {
		if text := lookup(tf.PlanetsInSigns, planet.Name, planet.Sign); text != "" {
			out[sectionKey(planet.Name, "in_sign")] = text
		}
		if level == ports.DetailBasic {
			continue
		}
		if text := lookup(tf.PlanetsInHouses, planet.Name, strconv.Itoa(planet.House)); text != "" {
			out[sectionKey(planet.Name, "in_house")] = text
		}
	}
	if level == ports.DetailDetailed {
		for _, a := range chart.Data.Aspects {
			if text, ok := tf.Aspects[string(a.AspectType)]; ok {
				out[sectionKey(a.Planet1+"_"+a.Planet2, string(a.AspectType))] = text
			}
		}
	}
	if text, ok := tf.SolarSet[chart.SolarSet.InterpretationKey()]; ok {
		out["solar_set"] = text
	}
	if overall, ok := tf.Sections["overall"]; ok {
		out["overall"] = overall
	}
	return out, nil
}

func (y *YAMLInterpreter) InterpretPlanetInSign(_ context.Context, planet, sign, language string) (string, error) {
	tf, err := y.load(language)
	if err != nil {
		return "", err
	}
	if text := lookup(tf.PlanetsInSigns, planet, sign); text != "" {
		return text, nil
	}
	return "", domain.NewInterpretationError(
		fmt.Sprintf("no text for %s in %s", planet, sign), language, nil)
}

func (y *YAMLInterpreter) InterpretPlanetInHouse(_ context.Context, planet string, house int, language string) (string, error) {
	tf, err := y.load(language)
	if err != nil {
		return "", err
	}
	if text := lookup(tf.PlanetsInHouses, planet, strconv.Itoa(house)); text != "" {
		return text, nil
	}
	return "", domain.NewInterpretationError(
		fmt.Sprintf("no text for %s in house %d", planet, house), language, nil)
}

func (y *YAMLInterpreter) InterpretAspect(_ context.Context, planet1, planet2 string, aspectType domain.AspectType, language string) (string, error) {
	tf, err := y.load(language)
	if err != nil {
		return "", err
	}
	if text, ok := tf.Aspects[string(aspectType)]; ok {
		return fmt.Sprintf("%s %s %s: %s", planet1, aspectType, planet2, text), nil
	}
	return "", domain.NewInterpretationError(
		fmt.Sprintf("no text for aspect %s", aspectType), language, nil)
}

func (y *YAMLInterpreter) InterpretSolarSet(_ context.Context, set domain.SolarSet, language string) (string, error) {
	tf, err := y.load(language)
	if err != nil {
		return "", err
	}
	if text, ok := tf.SolarSet[set.InterpretationKey()]; ok {
		return text, nil
	}
	// Fall back to the sun-sign entry when no exact combination exists.
	if text, ok := tf.SolarSet[set.SunSign]; ok {
		return text, nil
	}
	return "", domain.NewInterpretationError(
		fmt.Sprintf("no solar set text for %s", set.InterpretationKey()), language, nil)
}

func (y *YAMLInterpreter) InterpretTransit(_ context.Context, transit *domain.Transit, language string, _ ports.DetailLevel) (map[string]string, error) {
	tf, err := y.load(language)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	for _, a := range transit.SignificantAspects {
		if text, ok := tf.Aspects[string(a.AspectType)]; ok {
			out[sectionKey(a.TransitingPlanet+"_"+a.NatalPlanet, string(a.AspectType))] = text
		}
	}
	if overall, ok := tf.Sections["transit_overall"]; ok {
		out["overall"] = overall
	}
	return out, nil
}

func (y *YAMLInterpreter) InterpretSolarReturn(_ context.Context, sr *domain.SolarReturn, language string, _ ports.DetailLevel) (map[string]string, error) {
	tf, err := y.load(language)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	if text, ok := tf.SolarSet[sr.SolarSet.InterpretationKey()]; ok {
		out["solar_set"] = text
	}
	if overall, ok := tf.Sections["solar_return_overall"]; ok {
		out["overall"] = overall
	}
	return out, nil
}

func (y *YAMLInterpreter) GetSupportedLanguages() []string { return domain.SupportedLanguages }

func (y *YAMLInterpreter) IsLanguageSupported(code string) bool {
	return domain.IsLanguageSupported(code)
}

// load returns the cached translation file for language, reading it from disk
// on first access.
func (y *YAMLInterpreter) load(language string) (*translationFile, error) {
	if !domain.IsLanguageSupported(language) {
		return nil, domain.NewUnsupportedLanguage(language)
	}

	y.mu.RLock()
	tf, ok := y.cache[language]
	y.mu.RUnlock()
	if ok {
		return tf, nil
	}

	path := filepath.Join(y.dir, language+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		metrics.InterpretationFailuresTotal.WithLabelValues(language).Inc()
		return nil, domain.NewInterpretationError(
			fmt.Sprintf("translation file for %s unavailable", language), language, err)
	}

	tf = &translationFile{}
	if err := yaml.Unmarshal(raw, tf); err != nil {
		metrics.InterpretationFailuresTotal.WithLabelValues(language).Inc()
		return nil, domain.NewInterpretationError(
			fmt.Sprintf("translation file for %s is malformed", language), language, err)
	}

	y.mu.Lock()
	y.cache[language] = tf
	y.mu.Unlock()

	y.log.Debug().Str("language", language).Str("path", path).Msg("translation file loaded")
	return tf, nil
}

func lookup(m map[string]map[string]string, outer, inner string) string {
	if entries, ok := m[outer]; ok {
		return entries[inner]
	}
	return ""
}

func sectionKey(subject, kind string) string {
	return strings.ToLower(subject + "_" + kind)
}
