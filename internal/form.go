package internal

import (
	"eghl/entity"
	"golang.org/x/net/html"
	"io"
	"strings"
)

// paymentFormName is the only form the gateway uses to hand over the next step.
const paymentFormName = "frmProcessPayment"

// ExtractForm reads the gateway redirect form out of an untrusted HTML page.
// The page is tokenized only: nothing is executed and no other markup is interpreted.
// Values are returned as a browser would submit them.
func ExtractForm(body string) (*entity.RedirectForm, error) {
	z := html.NewTokenizer(strings.NewReader(body))

	var form *entity.RedirectForm
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, protocolError("malformed html")
			}
			return finishForm(form)
		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			switch token.Data {
			case "form":
				if form != nil {
					// nested forms are not valid html, the gateway never sends them
					continue
				}
				if attr(token, "name") != paymentFormName {
					continue
				}
				form = &entity.RedirectForm{Action: attr(token, "action")}
			case "input":
				if form == nil || !strings.EqualFold(attr(token, "type"), "hidden") {
					continue
				}
				name, ok := lookupAttr(token, "name")
				if !ok || name == "" {
					continue
				}
				form.Inputs = append(form.Inputs, entity.FormInput{Name: name, Value: attr(token, "value")})
			}
		case html.EndTagToken:
			if form != nil && z.Token().Data == "form" {
				return finishForm(form)
			}
		}
	}
}

func finishForm(form *entity.RedirectForm) (*entity.RedirectForm, error) {
	if form == nil {
		return nil, protocolError("no form found")
	}
	if form.Action == "" {
		return nil, protocolError("form has no action")
	}
	if len(form.Inputs) == 0 {
		return nil, protocolError("no inputs found")
	}
	return form, nil
}

func attr(token html.Token, key string) string {
	value, _ := lookupAttr(token, key)
	return value
}

// lookupAttr returns the first attribute named key; the tokenizer lower-cases attribute names.
func lookupAttr(token html.Token, key string) (string, bool) {
	for _, a := range token.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
