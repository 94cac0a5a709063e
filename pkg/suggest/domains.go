package suggest

// defaultDomains is ordered: on equal distance the earlier domain wins.
var defaultDomains = [...]string{
	"gmail.com",
	"googlemail.com",
	"google.com",
	"yahoo.com",
	"yahoo.co.uk",
	"ymail.com",
	"rocketmail.com",
	"hotmail.com",
	"hotmail.co.uk",
	"live.com",
	"msn.com",
	"outlook.com",
	"aol.com",
	"icloud.com",
	"me.com",
	"mac.com",
	"mail.com",
	"gmx.com",
	"gmx.net",
	"comcast.net",
	"att.net",
	"verizon.net",
	"sbcglobal.net",
	"bellsouth.net",
	"btinternet.com",
	"sky.com",
	"virginmedia.com",
	"ntlworld.com",
	"talktalk.net",
	"facebook.com",
	"protonmail.com",
	"zoho.com",
}

// Domains returns a copy of the built-in provider list.
func Domains() []string {
	out := make([]string, len(defaultDomains))
	copy(out, defaultDomains[:])
	return out
}
