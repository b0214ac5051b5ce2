package wordfreq

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func encodeCBPack(t *testing.T, bins ...[]string) []byte {
	t.Helper()
	payload := []any{map[string]any{"format": "cB", "version": 1}}
	for _, bin := range bins {
		payload = append(payload, bin)
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode cBpack: %v", err)
	}
	return data
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractWordlistOrderAndFilter(t *testing.T) {
	data := encodeCBPack(t,
		[]string{"hello", "a", "go-1"},
		[]string{},
		[]string{"world", "hello", "go"},
	)
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": gzipBytes(t, data),
		"wordfreq/data/small_en.msgpack.gz": gzipBytes(t, encodeCBPack(t, []string{"small"})),
	})

	words, err := ExtractWordlist(wheelPath, "EN", "large", 3)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	expected := []string{"hello", "world", "go"}
	if len(words) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
	for i, word := range expected {
		if words[i] != word {
			t.Fatalf("expected %q at index %d, got %q", word, i, words[i])
		}
	}
}

func TestExtractWordlistLimit(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": encodeCBPack(t,
			[]string{"hello", "world", "again"},
			[]string{"more", "words"},
		),
	})
	words, err := ExtractWordlist(wheelPath, "en", "large", 2)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func TestExtractWordlistKeepsNonASCIIForOtherLangs(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_de.msgpack": encodeCBPack(t, []string{"über", "straße", "x"}),
	})
	words, err := ExtractWordlist(wheelPath, "de", "small", 10)
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if len(words) != 2 || words[0] != "über" || words[1] != "straße" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestExtractWordlistRejectsUnknownFormat(t *testing.T) {
	data, err := msgpack.Marshal([]any{map[string]any{"format": "zipf", "version": 1}, []string{"hello"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	wheelPath := writeTestWheel(t, map[string][]byte{"wordfreq/data/large_en.msgpack": data})
	if _, err := ExtractWordlist(wheelPath, "en", "large", 5); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestExtractWordlistMissingLang(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": encodeCBPack(t, []string{"hello"}),
	})
	if _, err := ExtractWordlist(wheelPath, "fr", "large", 5); err == nil {
		t.Fatalf("expected missing data file error")
	}
}

func TestListLanguages(t *testing.T) {
	files := map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/large_pt-br.msgpack.gz":      []byte("x"),
		"wordfreq/data/small_zh-cn.msgpack.gz":      []byte("x"),
		"wordfreq/data/_chinese_mapping.msgpack.gz": []byte("x"),
		"wordfreq/data/jieba_zh.txt":                []byte("x"),
	}
	types, err := ListLanguageTypes(writeTestWheel(t, files))
	if err != nil {
		t.Fatalf("ListLanguageTypes failed: %v", err)
	}
	langs := LanguagesFromTypes(types)
	expected := []string{"en", "pt-br", "zh-cn"}
	if len(langs) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, langs)
	}
	for i, lang := range expected {
		if langs[i] != lang {
			t.Fatalf("expected %q at index %d, got %q", lang, i, langs[i])
		}
	}
	if !types.Has("zh-cn", "small") || types.Has("zh-cn", "large") {
		t.Fatalf("unexpected list types for zh-cn: %v", types["zh-cn"])
	}
}

func TestPickWheelPrefersPurePython(t *testing.T) {
	file, ok := pickWheel([]pypiFile{
		{Filename: "wordfreq-3.1.1.tar.gz", PackageType: "sdist"},
		{Filename: "wordfreq-3.1.1-cp311-linux.whl", PackageType: "bdist_wheel"},
		{Filename: "wordfreq-3.1.1-py3-none-any.whl", PackageType: "bdist_wheel"},
	})
	if !ok || file.Filename != "wordfreq-3.1.1-py3-none-any.whl" {
		t.Fatalf("unexpected wheel: %+v", file)
	}
	if _, ok := pickWheel([]pypiFile{{PackageType: "sdist"}}); ok {
		t.Fatalf("expected no wheel")
	}
}

func writeTestWheel(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "wordfreq-*.whl")
	if err != nil {
		t.Fatalf("failed to create temp wheel: %v", err)
	}
	defer func() {
		_ = tmpFile.Close()
	}()

	zw := zip.NewWriter(tmpFile)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return tmpFile.Name()
}
