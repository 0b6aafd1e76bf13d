package merge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

// detectionPattern matches a detected object with its confidence, e.g. "cat: 0.87".
var detectionPattern = regexp.MustCompile(`([\p{L}\p{N}_]+):\s*(\d\.\d{2})`)

// BeautifyText appends the snippet of every text answer to its evidence.
func BeautifyText(answers []domain.AnswerRecord) {
	for i := range answers {
		if answers[i].Snippet != "" {
			answers[i].Evidence = answers[i].Evidence + "\n" + answers[i].Snippet
		}
	}
}

// BeautifyMultimedia rewrites detection lists in multimedia evidence into a
// sentence followed by the snippet. Evidence without detections is kept.
func BeautifyMultimedia(answers []domain.AnswerRecord) {
	for i := range answers {
		if sentence, ok := describeDetections(answers[i].Evidence); ok {
			answers[i].Evidence = sentence + "\n" + answers[i].Snippet
		}
	}
}

func describeDetections(evidence string) (string, bool) {
	matches := detectionPattern.FindAllStringSubmatch(evidence, -1)
	if len(matches) == 0 {
		return "", false
	}

	objects := make([]string, 0, len(matches))
	for _, m := range matches {
		objects = append(objects, fmt.Sprintf("a %s: %s", m[1], m[2]))
	}

	if len(objects) == 1 {
		return fmt.Sprintf("Found %s in this video.", objects[0]), true
	}

	last := len(objects) - 1
	return fmt.Sprintf("Found %s and %s in this video.", strings.Join(objects[:last], ", "), objects[last]), true
}
