package web

import "github.com/raizdigital/especies/pkg/view"

// dialogs turns controller dialogs into page state. Notices become flash
// messages. A confirmation is answered by the "confirm" field of the delete
// post; when it is missing the question is put on the page and the answer is
// no.
type dialogs struct {
	page      *view.HTMLView
	pendingID int64
	confirmed bool
}

func (d *dialogs) arm(id int64, confirmed bool) {
	d.pendingID = id
	d.confirmed = confirmed
}

func (d *dialogs) disarm() {
	d.pendingID = 0
	d.confirmed = false
}

func (d *dialogs) Confirm(message string) bool {
	if d.confirmed {
		d.page.ClearConfirm()
		return true
	}
	d.page.SetConfirm(d.pendingID, message)
	return false
}

func (d *dialogs) Notify(message string) {
	d.page.AddFlash(message)
}
