package clientes

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const devolutionSubject = "Atenção - Seu cadastro precisa de ajustes!"

var devolutionTemplate = template.Must(template.New("devolucao").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
  <h1>CFO Hub - Ajustes Necessários</h1>
  <p>Olá <strong>{{.Nome}}</strong>,</p>
  <p>Seu cadastro foi analisado e identificamos alguns pontos que precisam ser ajustados antes da aprovação.</p>
  <h3>Correções Necessárias:</h3>
  <p>{{range $i, $line := .Linhas}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  <p>Para fazer as correções necessárias, acesse nossa plataforma:</p>
  <a href="{{.LoginURL}}">Acessar Plataforma</a>
  <p>Após realizar os ajustes, reenvie seu cadastro para análise.</p>
</body>
</html>
`))

// devolutionEmail renders the message sent when a registration is returned
// for corrections.
func devolutionEmail(nome, comentarios, loginURL string) (string, string, error) {
	var buf bytes.Buffer
	err := devolutionTemplate.Execute(&buf, struct {
		Nome     string
		Linhas   []string
		LoginURL string
	}{Nome: nome, Linhas: strings.Split(comentarios, "\n"), LoginURL: loginURL})
	if err != nil {
		return "", "", fmt.Errorf("render devolution email: %w", err)
	}
	return devolutionSubject, buf.String(), nil
}
