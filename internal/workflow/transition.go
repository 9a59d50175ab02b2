package workflow

import "github.com/five82/lostfound/internal/catalogue"

// Transition is the workflow's state machine. It is pure: the returned effects
// describe every side effect and the caller applies them in order.
func Transition(role Role, s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Propose:
		return propose(s, ev)
	case Cancel:
		return cancel(role, s)
	case Submit:
		return submit(role, s, ev)
	case SearchDone:
		if !awaiting(s, ev.RequestID) {
			return s, nil
		}
		return searchDone(s, ev)
	case UploadDone:
		if !awaiting(s, ev.RequestID) {
			return s, nil
		}
		return uploadDone(s, ev)
	}
	return s, nil
}

func propose(s State, ev Propose) (State, []Effect) {
	if s.Phase == Submitting {
		return s, nil
	}
	if !ev.File.IsImage() {
		return s, []Effect{ShowError{Message: MsgNotImage}}
	}
	s.Phase = Previewing
	s.Candidate = &Candidate{File: ev.File}
	return s, []Effect{ShowPreview{File: ev.File}, HideInput{}, HideResult{}}
}

func cancel(role Role, s State) (State, []Effect) {
	if s.Phase != Previewing {
		return s, nil
	}
	effects := []Effect{ClearPicker{}}
	if role == RoleUpload {
		effects = append(effects, ClearInfo{})
	}
	effects = append(effects, ShowInput{}, HidePreview{}, HideResult{})
	return State{Phase: Idle}, effects
}

func submit(role Role, s State, ev Submit) (State, []Effect) {
	if s.Phase == Submitting {
		return s, nil
	}
	if s.Candidate == nil {
		return s, []Effect{ShowError{Message: MsgNoCandidate}}
	}
	candidate := *s.Candidate
	if role == RoleUpload {
		candidate.Info = trimInfo(ev.Info)
	}
	s.Phase = Submitting
	s.Candidate = &candidate
	s.Pending = ev.RequestID
	return s, []Effect{
		SetBusy{Busy: true, Label: BusyLabel(role)},
		HideResult{},
		StartRequest{RequestID: ev.RequestID, Role: role, File: candidate.File, Info: candidate.Info},
	}
}

func searchDone(s State, ev SearchDone) (State, []Effect) {
	settled := SetBusy{Busy: false, Label: MsgSearchLabel}
	if ev.Err != nil {
		return retain(s), []Effect{settled, ShowError{Message: catalogue.Reason(ev.Err, catalogue.OpSearch)}}
	}
	if ev.Match == nil {
		return retain(s), []Effect{settled, ShowError{Message: MsgNoMatch}}
	}
	return State{Phase: Idle}, []Effect{
		settled,
		ShowResult{Match: *ev.Match},
		ClearPicker{},
		ShowInput{},
		HidePreview{},
	}
}

func uploadDone(s State, ev UploadDone) (State, []Effect) {
	settled := SetBusy{Busy: false, Label: MsgUploadLabel}
	if ev.Err != nil {
		return retain(s), []Effect{settled, ShowError{Message: catalogue.Reason(ev.Err, catalogue.OpUpload)}}
	}
	return State{Phase: Idle}, []Effect{
		settled,
		ShowSuccess{Message: MsgUploaded},
		ClearPicker{},
		ClearInfo{},
		ShowInput{},
		HidePreview{},
		RefreshList{},
	}
}

// retain folds a settled failure back into Previewing with the candidate
// untouched.
func retain(s State) State {
	s.Phase = Previewing
	s.Pending = ""
	return s
}

func awaiting(s State, id string) bool {
	return s.Phase == Submitting && s.Pending != "" && s.Pending == id
}
