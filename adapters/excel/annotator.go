package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"camcheck/internal/engine"
	apperrors "camcheck/internal/errors"
)

const annotationAuthor = "Validation Tool"

// Annotator applies planned annotations back onto the original file:
// a yellow highlight plus an explanatory comment per failing cell.
// Cell values are never touched, only presentation.
type Annotator struct{}

func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate writes an annotated copy of the workbook at inputPath to
// outputPath. Existing comments on a target cell are deleted before
// writing, so annotating an already-annotated file converges instead
// of accumulating duplicates.
func (a *Annotator) Annotate(inputPath, outputPath string, plan []engine.Annotation) error {
	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return apperrors.WorkbookError("failed to open workbook for annotation", err)
	}
	defer f.Close()

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create highlight style: %w", err)
	}

	applied := 0
	for _, ann := range plan {
		sheetIdx, err := f.GetSheetIndex(ann.Sheet)
		if err != nil || sheetIdx < 0 {
			log.Printf("[Annotator] skipping %s!%s: sheet not found", ann.Sheet, ann.CellRef)
			continue
		}

		if err := f.SetCellStyle(ann.Sheet, ann.CellRef, ann.CellRef, highlight); err != nil {
			return fmt.Errorf("failed to highlight %s!%s: %w", ann.Sheet, ann.CellRef, err)
		}

		// Delete-then-write keeps re-annotation idempotent.
		if err := f.DeleteComment(ann.Sheet, ann.CellRef); err != nil {
			return fmt.Errorf("failed to clear comment at %s!%s: %w", ann.Sheet, ann.CellRef, err)
		}
		if err := f.AddComment(ann.Sheet, excelize.Comment{
			Cell:   ann.CellRef,
			Author: annotationAuthor,
			Paragraph: []excelize.RichTextRun{
				{Text: ann.Note},
			},
		}); err != nil {
			return fmt.Errorf("failed to comment %s!%s: %w", ann.Sheet, ann.CellRef, err)
		}
		applied++
	}

	if err := f.SaveAs(outputPath); err != nil {
		return apperrors.WorkbookError("failed to save annotated workbook", err)
	}
	log.Printf("[Annotator] %d annotation(s) written to %s", applied, outputPath)
	return nil
}
