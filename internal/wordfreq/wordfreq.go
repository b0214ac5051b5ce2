// Package wordfreq imports frequency-ordered word lists from the wordfreq
// Python wheel published on PyPI.
package wordfreq

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/bananatype/internal/wordlist"
)

const (
	pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"
	dataPrefix   = "wordfreq/data/"

	minWordLen = 2
	maxWordLen = 20
)

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

// Source labels words imported from this wheel in the corpus store.
func (w Wheel) Source(listType string) string {
	return fmt.Sprintf("wordfreq %s (%s, CC BY-SA 4.0)", w.Version, listType)
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	PackageType string `json:"packagetype"`
}

type pypiRelease struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir. A wheel
// already in the cache is reused.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var release pypiRelease
	if err := getJSON(ctx, pypiEndpoint, &release); err != nil {
		return Wheel{}, err
	}
	if release.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	file, ok := pickWheel(release.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: release.Info.Version, Filename: file.Filename, Path: filepath.Join(cacheDir, file.Filename)}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}
	if err := download(ctx, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

func get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	return resp, nil
}

func getJSON(ctx context.Context, url string, out any) error {
	resp, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pypi response: %w", err)
	}
	return nil
}

// download writes url to dest through a temp file in the same directory.
func download(ctx context.Context, url, dest string) error {
	resp, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

// pickWheel prefers the pure-python wheel.
func pickWheel(files []pypiFile) (pypiFile, bool) {
	var fallback *pypiFile
	for i := range files {
		if files[i].PackageType != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(files[i].Filename, "py3-none-any.whl") {
			return files[i], true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback == nil {
		return pypiFile{}, false
	}
	return *fallback, true
}

// LanguageTypes maps language codes to available list types ("large", "small").
type LanguageTypes map[string]map[string]struct{}

// Has reports whether lang offers listType.
func (t LanguageTypes) Has(lang, listType string) bool {
	_, ok := t[lang][listType]
	return ok
}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType, ok := parseDataName(file.Name)
		if !ok {
			continue
		}
		if langs[lang] == nil {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// LanguagesFromTypes returns sorted language codes from the map.
func LanguagesFromTypes(types LanguageTypes) []string {
	out := make([]string, 0, len(types))
	for lang := range types {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// parseDataName splits "wordfreq/data/large_pt-br.msgpack.gz" into ("pt-br", "large").
func parseDataName(name string) (lang, listType string, ok bool) {
	name = strings.ToLower(name)
	base, found := strings.CutPrefix(name, dataPrefix)
	if !found {
		return "", "", false
	}
	base, found = strings.CutSuffix(base, ".msgpack.gz")
	if !found {
		base, found = strings.CutSuffix(base, ".msgpack")
	}
	if !found {
		return "", "", false
	}
	listType, lang, found = strings.Cut(base, "_")
	if !found || lang == "" || (listType != "large" && listType != "small") {
		return "", "", false
	}
	return lang, listType, true
}

// ExtractWordlist returns up to limit words for lang, most frequent first.
// Words that are not purely alphabetic, are too short or too long, or fail the
// language filter are skipped.
func ExtractWordlist(wheelPath, lang, listType string, limit int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(lang)
	if lang == "" {
		return nil, fmt.Errorf("unsupported language")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	bins, err := readBins(wheelPath, lang, strings.ToLower(listType))
	if err != nil {
		return nil, err
	}

	keep := wordlist.FilterForLang(lang)
	seen := make(map[string]struct{})
	words := make([]string, 0, limit)
	for _, bin := range bins {
		for _, word := range bin {
			if !usable(word) || !keep(word) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) >= limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

// usable bounds word length; the character rules come from wordlist.FilterForLang.
func usable(word string) bool {
	n := utf8.RuneCountInString(word)
	return n >= minWordLen && n <= maxWordLen
}

func readBins(wheelPath, lang, listType string) ([][]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		fileLang, fileType, ok := parseDataName(file.Name)
		if !ok || fileLang != lang || fileType != listType {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		defer func() {
			_ = rc.Close()
		}()
		return decodeBins(rc, strings.HasSuffix(strings.ToLower(file.Name), ".gz"))
	}
	return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
}
