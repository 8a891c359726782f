package phrases

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/dikte/internal/model"
)

// LoadFile reads phrase pairs from path, one "source<TAB>translation" per
// line. Blank lines and lines starting with '#' are skipped; the translation
// may be omitted.
func LoadFile(path string) ([]model.PhrasePair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only phrase file.
			_ = cerr
		}
	}()

	var pairs []model.PhrasePair
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		source, translation, _ := strings.Cut(line, "\t")
		source = strings.TrimSpace(source)
		if source == "" {
			return nil, fmt.Errorf("line %d: empty phrase", lineNo)
		}
		pairs = append(pairs, model.PhrasePair{Source: source, Translation: strings.TrimSpace(translation)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("phrase file is empty")
	}
	return pairs, nil
}
