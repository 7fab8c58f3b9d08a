package services

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/maplepath/api/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/optimization.schema.json
var optimizationSchemaJSON string

var optimizationSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(optimizationSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("optimization schema: %v", err))
	}
	return s
}()

var errNoJSONObject = errors.New("no JSON object in model response")

// rawOptimization keeps presence information so absent fields can be filled in.
type rawOptimization struct {
	OptimizedSummary *string  `json:"optimized_summary"`
	OptimizedSkills  []string `json:"optimized_skills"`
	KeyAchievements  []string `json:"key_achievements"`
	ATSKeywords      []string `json:"ats_keywords"`
	Tips             []string `json:"tips"`
	ATSScore         *float64 `json:"ats_score"`
}

// extractJSONObject returns the text between the first '{' and the last '}'.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return text[start : end+1], nil
}

// parseOptimization is the single fallible step between a raw model reply and
// a typed payload: extraction, schema validation and decoding.
func parseOptimization(text string) (*rawOptimization, error) {
	obj, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	res, err := optimizationSchema.Validate(gojsonschema.NewStringLoader(obj))
	if err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("model JSON failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var raw rawOptimization
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return &raw, nil
}

// merge fills every field the model left empty from fb and clamps the score.
func (r *rawOptimization) merge(fb models.Optimization) models.Optimization {
	out := fb
	if r.OptimizedSummary != nil && strings.TrimSpace(*r.OptimizedSummary) != "" {
		out.OptimizedSummary = strings.TrimSpace(*r.OptimizedSummary)
	}
	if s := cleanList(r.OptimizedSkills); len(s) > 0 {
		out.OptimizedSkills = s
	}
	if s := cleanList(r.KeyAchievements); len(s) > 0 {
		out.KeyAchievements = s
	}
	if s := cleanList(r.ATSKeywords); len(s) > 0 {
		out.ATSKeywords = s
	}
	if s := cleanList(r.Tips); len(s) > 0 {
		out.Tips = s
	}
	if r.ATSScore != nil {
		out.ATSScore = clampScore(*r.ATSScore)
	}
	return out
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
