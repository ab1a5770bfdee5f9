package models

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"In Progress", StatusInProgress, true},
		{"in-progress", StatusInProgress, true},
		{"in_progress", StatusInProgress, true},
		{" Completed ", StatusCompleted, true},
		{"4", StatusCancelled, true},
		{"0", 0, false},
		{"shipped", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("%v should be valid", s)
		}
	}
	if Status(5).Valid() || Status(0).Valid() {
		t.Error("out of range status reported valid")
	}
	if Status(9).String() != "Unknown" {
		t.Errorf("Status(9) = %q", Status(9).String())
	}
}

func TestStatusSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"Completed":   SeveritySuccess,
		"In Progress": SeverityInfo,
		"Pending":     SeverityWarning,
		"Cancelled":   SeverityDanger,
		"On Hold":     SeverityNone,
	} {
		if got := StatusSeverity(name); got != want {
			t.Errorf("StatusSeverity(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestPendingItemKey(t *testing.T) {
	a := PendingItem{ID: "12", OrderID: "3"}
	b := PendingItem{ID: "2", OrderID: "31"}
	if a.Key() != "3-12" {
		t.Errorf("Key() = %q", a.Key())
	}
	if a.Key() == b.Key() {
		t.Error("distinct rows share a key")
	}
}

func TestJobOrderCompleted(t *testing.T) {
	var p PendingItem
	if p.JobOrderCompleted() || p.HasJobOrder() {
		t.Error("item without job order")
	}

	p.JobOrderStatus = []JobOrderStatus{{StatusName: "Completed"}, {StatusName: "Reopened"}}
	if p.JobOrderCompleted() {
		t.Error("only the latest sub-status counts")
	}
	if got := p.LatestJobOrderStatus(); got != "Reopened" {
		t.Errorf("LatestJobOrderStatus() = %q", got)
	}

	p.JobOrderStatus = append(p.JobOrderStatus, JobOrderStatus{StatusName: JobOrderStatusCompleted})
	if !p.JobOrderCompleted() {
		t.Error("latest Completed should unlock completion")
	}
}

func TestPaths(t *testing.T) {
	p := PendingItem{ID: "9", OrderID: "a&b"}

	if got, want := p.SalesOrderPath(), "/pages/orders/sales-order?id=a%26b&source=pending-sales"; got != want {
		t.Errorf("SalesOrderPath() = %q, want %q", got, want)
	}
	if got, want := p.JobOrderPath(), "/pages/orders/job-order?id=a%26b&completed=false&source=pending-sales"; got != want {
		t.Errorf("JobOrderPath() without job = %q, want %q", got, want)
	}

	p.JobOrderStatus = []JobOrderStatus{{StatusName: "Cutting"}}
	if got, want := p.JobOrderPath(), "/pages/orders/job-order?id=a%26b&source=pending-sales"; got != want {
		t.Errorf("JobOrderPath() with job = %q, want %q", got, want)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"asha", "rao", "AR"},
		{"Émile", "", "É"},
		{" ", "Singh", "S"},
		{"", "", ""},
	}
	for _, tt := range tests {
		u := UserProfile{FirstName: tt.first, LastName: tt.last}
		if got := u.Initials(); got != tt.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestCustomerFullName(t *testing.T) {
	if got := (Customer{FirstName: "Asha"}).FullName(); got != "Asha" {
		t.Errorf("FullName() = %q", got)
	}
	if got := (Customer{FirstName: "Asha", LastName: "Rao"}).FullName(); got != "Asha Rao" {
		t.Errorf("FullName() = %q", got)
	}
}
