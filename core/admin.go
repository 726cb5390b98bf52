package core

// AdminChecker is the opaque admin predicate over an identifier (an email here).
type AdminChecker interface {
	IsAdmin(identifier string) bool
}

// AdminList grants admin rights to a fixed set of emails.
type AdminList struct {
	emails map[string]struct{}
}

var _ AdminChecker = (*AdminList)(nil)

func NewAdminList(emails ...string) *AdminList {
	l := &AdminList{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = CleanString(e, true /* lower */); e != "" {
			l.emails[e] = struct{}{}
		}
	}
	return l
}

func (l *AdminList) IsAdmin(identifier string) bool {
	if l == nil {
		return false
	}
	_, ok := l.emails[CleanString(identifier, true /* lower */)]
	return ok
}
