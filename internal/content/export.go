package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/platform/xlsx"
)

// ExportWorksheetXLSX writes ws as a workbook with one row per question part
// and a closing total.
func ExportWorksheetXLSX(w io.Writer, ws Worksheet) error {
	if len(ws.Questions) == 0 {
		return fmt.Errorf("%w: worksheet has no questions", ErrInvalidRequest)
	}

	var rows [][]any
	for qi, q := range ws.Questions {
		for pi, p := range q.Parts {
			question := ""
			if pi == 0 {
				question = fmt.Sprintf("%d. %s", qi+1, q.Title)
			}
			rows = append(rows, []any{question, p.Prompt, p.Marks, p.ModelAnswer})
		}
	}
	rows = append(rows, []any{"", "Total", ws.TotalMarks(), ""})

	return xlsx.Write(w, xlsx.Table{
		Sheet:  "Worksheet",
		Title:  ws.Title,
		Header: []string{"Question", "Part", "Marks", "Model answer"},
		Rows:   rows,
		Widths: []float64{32, 60, 8, 80},
	})
}

// ExportQuizXLSX writes q as a workbook with one row per question.
func ExportQuizXLSX(w io.Writer, q Quiz) error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz has no questions", ErrInvalidRequest)
	}

	rows := make([][]any, 0, len(q.Questions))
	for i, item := range q.Questions {
		rows = append(rows, []any{
			i + 1,
			string(item.Type),
			item.Question,
			strings.Join(item.Options, "\n"),
			item.CorrectAnswer,
			item.Explanation,
		})
	}

	return xlsx.Write(w, xlsx.Table{
		Sheet:  "Quiz",
		Title:  q.Title,
		Header: []string{"#", "Type", "Question", "Options", "Answer", "Explanation"},
		Rows:   rows,
		Widths: []float64{5, 16, 60, 40, 40, 60},
	})
}
