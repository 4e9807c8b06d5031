package diag

import (
	"testing"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: "E2", Filename: "b.py", Line: 1}) {
		t.Fatal("first Add must succeed")
	}
	b.Add(Diagnostic{Code: "E1", Filename: "a.py", Line: 3})
	if b.Add(Diagnostic{Code: "E3", Filename: "a.py", Line: 1}) {
		t.Fatal("Add beyond limit must fail")
	}
	b.Sort()
	if got := b.Items()[0].Filename; got != "a.py" {
		t.Fatalf("after Sort first file = %q", got)
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	d := Diagnostic{Code: IOError, Filename: "x.py", Line: 1, Message: "boom"}
	for range 3 {
		b.Add(d)
	}
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
}

func TestBagReporterKeepsRepeats(t *testing.T) {
	b := NewBag(0)
	r := BagReporter{Bag: b}
	ReportError(r, SyntaxError, "m.py", 2, 4, "invalid syntax").Emit()
	ReportError(r, SyntaxError, "m.py", 2, 4, "invalid syntax").Emit()
	if b.Len() != 2 {
		t.Fatalf("expected both diagnostics, got %d", b.Len())
	}
}

func TestCodeHelpers(t *testing.T) {
	if IndentMixed.String() != "E101" {
		t.Fatal("code string")
	}
	if UnknownCode.String() != "UNKNOWN" {
		t.Fatal("unknown code string")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportWarning(BagReporter{Bag: b}, "W291", "f.py", 1, 5, "trailing whitespace").WithPhysicalLine("x = 1   \n")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", b.Len())
	}
	if got := b.Items()[0].PhysicalLine; got != "x = 1   \n" {
		t.Fatalf("physical line = %q", got)
	}
}
