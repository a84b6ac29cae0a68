package fixtures

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Fixture is one generated record as it appears on the wire.
type Fixture = map[string]any

// Generator builds the fixture for id. Equal ids yield equal fixtures.
type Generator func(id int) Fixture

const isoMillis = "2006-01-02T15:04:05.000Z"

// day renders a calendar date at UTC midnight. Out-of-range days roll over
// into adjacent months.
func day(year int, month time.Month, d int) string {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(isoMillis)
}

func pad(id, width int) string {
	s := strconv.Itoa(id)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func pick(options []string, id int) string {
	i := id % len(options)
	if i < 0 {
		i += len(options)
	}
	return options[i]
}

func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(a) / float64(b)))
}

func user(id int) Fixture {
	role := "colaborador"
	if id == 1 {
		role = "admin"
	}
	return Fixture{
		"id":              strconv.Itoa(id),
		"nome":            fmt.Sprintf("Usuário %d", id),
		"email":           fmt.Sprintf("user%d@empresa.com", id),
		"role":            role,
		"ativo":           true,
		"avatar":          nil,
		"tipo":            "CLT",
		"primeiro_acesso": false,
		"departamento":    "Gestão",
		"cargo":           "Gestor",
		"telefone":        "11999999999",
	}
}

func cliente(id int) Fixture {
	status := "ativo"
	if id%3 == 0 {
		status = "pendente"
	}
	return Fixture{
		"id":   id,
		"nome": fmt.Sprintf("Cliente %d", id),
		"dadosGerais": Fixture{
			"nome":            fmt.Sprintf("Cliente %d", id),
			"nomeFantasia":    fmt.Sprintf("Fantasia %d", id),
			"cnpj":            pad(id, 14),
			"endereco":        fmt.Sprintf("Rua %d", id),
			"numero":          strconv.Itoa(100 + id),
			"cidade":          "São Paulo",
			"uf":              "SP",
			"segmentoAtuacao": "Varejo",
			"site":            fmt.Sprintf("https://cliente%d.com.br", id),
		},
		"contatosPrincipais": Fixture{
			"nomeSocio":       fmt.Sprintf("Sócio %d", id),
			"cpfSocio":        pad(id, 11),
			"emailPrincipal":  fmt.Sprintf("contato%d@cliente%d.com.br", id, id),
			"emailFinanceiro": fmt.Sprintf("financeiro%d@cliente%d.com.br", id, id),
			"telefone":        fmt.Sprintf("11%d9999", 9999+id),
			"whatsapp":        fmt.Sprintf("11%d9999", 9999+id),
		},
		"status":       status,
		"dataRegistro": day(2026, time.January, 29-id),
	}
}

func colaborador(id int) Fixture {
	return Fixture{
		"id":           strconv.Itoa(id),
		"nome":         fmt.Sprintf("Colaborador %d", id),
		"email":        fmt.Sprintf("colab%d@empresa.com", id),
		"telefone":     "11999999999",
		"cargo":        "Analista",
		"departamento": "RH",
		"ativo":        true,
		"dataAdmissao": "2024-01-15",
		"cpf":          pad(id, 11),
		"rg":           pad(id, 9),
		"salario":      3000 + id*500,
		"funcao":       "Analista Sênior",
		"gerente":      fmt.Sprintf("Gerente %d", ceilDiv(id, 3)),
	}
}

func tarefa(id int) Fixture {
	return Fixture{
		"id":              strconv.Itoa(id),
		"titulo":          fmt.Sprintf("Tarefa %d", id),
		"descricao":       fmt.Sprintf("Descrição da tarefa %d", id),
		"status":          pick([]string{"pendente", "em_progresso", "concluida"}, id),
		"prioridade":      pick([]string{"baixa", "media", "alta"}, id),
		"dataVencimento":  day(2026, time.February, 1+id),
		"responsavel":     fmt.Sprintf("Colaborador %d", id),
		"responsavelId":   strconv.Itoa(id),
		"projeto":         fmt.Sprintf("Projeto %d", ceilDiv(id, 2)),
		"dataCriacao":     day(2026, time.January, 20),
		"dataAtualizacao": day(2026, time.January, 25),
		"estimativaHoras": 8 + id,
		"horasGastas":     4 + id%5,
	}
}

func solicitacao(id int) Fixture {
	var decisao any
	if id%2 == 0 {
		decisao = day(2026, time.January, 28-id)
	}
	return Fixture{
		"id":              strconv.Itoa(id),
		"tipo":            pick([]string{"folga", "adiantamento", "licenca"}, id),
		"status":          pick([]string{"pendente", "aprovada", "rejeitada"}, id),
		"dataSolicitacao": day(2026, time.January, 29-id),
		"dataDecisao":     decisao,
		"colaborador":     colaborador(id),
		"motivo":          fmt.Sprintf("Motivo da solicitação %d", id),
		"dataInicio":      day(2026, time.February, id+1),
		"dataFim":         day(2026, time.February, id+3),
		"diasSolicitados": 2 + id%3,
		"aprovadoPor":     fmt.Sprintf("Gestor %d", id),
	}
}

func notificacao(id int) Fixture {
	return Fixture{
		"id":          strconv.Itoa(id),
		"tipo":        pick([]string{"info", "aviso", "erro"}, id),
		"titulo":      fmt.Sprintf("Notificação %d", id),
		"mensagem":    fmt.Sprintf("Mensagem da notificação %d", id),
		"lida":        id%2 == 0,
		"dataCriacao": day(2026, time.January, 29-id%5),
		"referencia":  Fixture{"tipo": "tarefa", "id": strconv.Itoa(id)},
		"prioridade":  pick([]string{"baixa", "normal", "alta"}, id),
	}
}

func documento(id int) Fixture {
	return Fixture{
		"id":          strconv.Itoa(id),
		"nome":        fmt.Sprintf("Documento %d.pdf", id),
		"tipo":        pick([]string{"contrato", "nota", "comprovante", "planilha"}, id),
		"tamanho":     1024 * (100 + id),
		"dataUpload":  day(2026, time.January, 29-id),
		"uploadPor":   fmt.Sprintf("Usuário %d", id),
		"uploadPorId": strconv.Itoa(id),
		"url":         fmt.Sprintf("https://example.com/docs/%d.pdf", id),
		"categoria":   pick([]string{"financeiro", "rh", "operacional"}, id),
		"descricao":   fmt.Sprintf("Descrição do documento %d", id),
	}
}

func okr(id int) Fixture {
	return Fixture{
		"id":            strconv.Itoa(id),
		"objetivo":      fmt.Sprintf("Objetivo %d", id),
		"descricao":     fmt.Sprintf("Descrição do objetivo %d", id),
		"periodo":       "2026 Q1",
		"status":        pick([]string{"planejamento", "em_progresso", "concluido"}, id),
		"progresso":     (id * 15) % 100,
		"responsavel":   fmt.Sprintf("Colaborador %d", id),
		"responsavelId": strconv.Itoa(id),
		"keyResults": []Fixture{
			{"id": "1", "descricao": fmt.Sprintf("KR 1.%d", id), "progresso": (id * 20) % 100, "meta": 100},
			{"id": "2", "descricao": fmt.Sprintf("KR 2.%d", id), "progresso": (id * 25) % 100, "meta": 100},
		},
		"dataCriacao":     day(2026, time.January, 1),
		"dataFinalizacao": day(2026, time.April, 1),
	}
}

func avaliacao(id int) Fixture {
	return Fixture{
		"id":            strconv.Itoa(id),
		"colaborador":   colaborador(id),
		"colaboradorId": strconv.Itoa(id),
		"periodo":       "2025 Q4",
		"status":        pick([]string{"rascunho", "finalizada", "fechada"}, id),
		"nota":          7 + id%3,
		"dataAvaliacao": day(2026, time.January, 29-id),
		"avaliador":     fmt.Sprintf("Gestor %d", id),
		"avaliadorId":   strconv.Itoa(id),
		"competencias": []Fixture{
			{"nome": "Comunicação", "nota": 8},
			{"nome": "Liderança", "nota": 7},
			{"nome": "Técnica", "nota": 8},
		},
		"comentarios": fmt.Sprintf("Avaliação do colaborador %d", id),
	}
}

func beneficio(id int) Fixture {
	return Fixture{
		"id":                strconv.Itoa(id),
		"nome":              fmt.Sprintf("Benefício %d", id),
		"descricao":         fmt.Sprintf("Descrição do benefício %d", id),
		"tipo":              pick([]string{"saude", "alimentacao", "transporte", "conveniencia"}, id),
		"valor":             100 * (id + 1),
		"ativo":             true,
		"dataVigencia":      day(2026, time.January, 1),
		"fornecedor":        fmt.Sprintf("Fornecedor %d", id),
		"contatoFornecedor": fmt.Sprintf("contato%d@fornecedor.com.br", id),
		"beneficiarios":     10 + id,
	}
}

func folha(id int) Fixture {
	return Fixture{
		"id":                strconv.Itoa(id),
		"mes":               "2026-" + pad(id, 2),
		"total":             15000 * id,
		"colaboradores":     10 + id,
		"status":            pick([]string{"rascunho", "processada", "paga", "auditada"}, id),
		"dataProcessamento": day(2026, time.January, 28),
		"dataPagamento":     day(2026, time.January, 28),
		"descontos":         1500 * id,
		"encargos":          3000 * id,
		"liquido":           10500 * id,
	}
}

func folhaCliente(id int) Fixture {
	return Fixture{
		"id":                strconv.Itoa(id),
		"cliente":           cliente(id),
		"clienteId":         id,
		"mes":               "2026-" + pad(id, 2),
		"valor":             5000 + id*1000,
		"status":            pick([]string{"pendente", "processada", "paga"}, id),
		"servicosPrestados": []string{fmt.Sprintf("Serviço %d-1", id), fmt.Sprintf("Serviço %d-2", id)},
		"dataPagamento":     day(2026, time.January, 28),
	}
}

func chat(id int) Fixture {
	naoLidas := 0
	if id%2 == 0 {
		naoLidas = id
	}
	return Fixture{
		"id":                 strconv.Itoa(id),
		"participantes":      []string{fmt.Sprintf("Usuário %d", id), fmt.Sprintf("Colaborador %d", id+1)},
		"participantesIds":   []string{strconv.Itoa(id), strconv.Itoa(id + 1)},
		"ultimaMensagem":     fmt.Sprintf("Última mensagem do chat %d", id),
		"dataUltimaMensagem": day(2026, time.January, 29-id%3),
		"naoLidas":           naoLidas,
		"tipo":               "privado",
	}
}

func mural(id int) Fixture {
	return Fixture{
		"id":           strconv.Itoa(id),
		"autor":        fmt.Sprintf("Usuário %d", id),
		"autorId":      strconv.Itoa(id),
		"conteudo":     fmt.Sprintf("Post do mural número %d. Confira as novidades da empresa!", id),
		"dataCriacao":  day(2026, time.January, 29-id%5),
		"dataEdicao":   day(2026, time.January, 28-id%5),
		"curtidas":     id * 2,
		"comentarios":  id,
		"tipo":         pick([]string{"comunicado", "dica", "celebracao", "feedback"}, id),
		"ativo":        true,
		"visibilidade": "publico",
	}
}

func feedback(id int) Fixture {
	return Fixture{
		"id":           strconv.Itoa(id),
		"de":           fmt.Sprintf("Usuário %d", id),
		"deId":         strconv.Itoa(id),
		"para":         fmt.Sprintf("Colaborador %d", id+1),
		"paraId":       strconv.Itoa(id + 1),
		"conteudo":     fmt.Sprintf("Feedback construtivo número %d", id),
		"dataFeedback": day(2026, time.January, 29-id),
		"categoria":    pick([]string{"desempenho", "comportamento", "desenvolvimento", "lideranca"}, id),
		"publicado":    id%2 == 0,
		"tipo":         "positivo",
	}
}

func lembrete(id int) Fixture {
	return Fixture{
		"id":             strconv.Itoa(id),
		"titulo":         fmt.Sprintf("Lembrete %d", id),
		"descricao":      fmt.Sprintf("Descrição do lembrete %d", id),
		"dataVencimento": day(2026, time.February, 1+id),
		"prioridade":     pick([]string{"baixa", "media", "alta"}, id),
		"concluido":      id%3 == 0,
		"criador":        fmt.Sprintf("Usuário %d", id),
		"criadorId":      strconv.Itoa(id),
		"categoria":      "geral",
		"dataCriacao":    day(2026, time.January, 29-id),
	}
}

func ponto(id int) Fixture {
	var justificativa any
	if id%2 == 0 {
		justificativa = fmt.Sprintf("Justificativa %d", id)
	}
	return Fixture{
		"id":            strconv.Itoa(id),
		"colaborador":   fmt.Sprintf("Colaborador %d", id),
		"colaboradorId": strconv.Itoa(id),
		"data":          day(2026, time.January, 29-id%5),
		"horaEntrada":   fmt.Sprintf("0%d:00", 8+id%2),
		"horaSaida":     fmt.Sprintf("1%d:00", 7+id%2),
		"horasTrabalho": 8 + id%2,
		"tipo":          pick([]string{"presencial", "remoto", "hibrido"}, id),
		"justificativa": justificativa,
		"aprovado":      id%2 == 0,
	}
}

func calendario(id int) Fixture {
	return Fixture{
		"id":               strconv.Itoa(id),
		"titulo":           fmt.Sprintf("Evento %d", id),
		"descricao":        fmt.Sprintf("Descrição do evento %d", id),
		"dataInicio":       day(2026, time.February, 1+id),
		"dataFim":          day(2026, time.February, 2+id),
		"horaInicio":       fmt.Sprintf("%d:00", 9+id%8),
		"horaFim":          fmt.Sprintf("%d:00", 11+id%8),
		"local":            fmt.Sprintf("Sala %d", id),
		"participantes":    []string{"Participante 1", fmt.Sprintf("Participante %d", id+1)},
		"participantesIds": []string{strconv.Itoa(id), strconv.Itoa(id + 1)},
		"tipo":             pick([]string{"reuniao", "treinamento", "confraternizacao", "apresentacao"}, id),
		"organizador":      fmt.Sprintf("Organizador %d", id),
		"status":           pick([]string{"confirmado", "pendente", "cancelado"}, id),
	}
}

func automacao(id int) Fixture {
	return Fixture{
		"id":                 strconv.Itoa(id),
		"nome":               fmt.Sprintf("Automação %d", id),
		"descricao":          fmt.Sprintf("Descrição da automação %d", id),
		"ativa":              id%2 == 0,
		"tipo":               pick([]string{"email", "sms", "webhook", "workflow"}, id),
		"trigger":            fmt.Sprintf("trigger_%d", id),
		"acao":               fmt.Sprintf("acao_%d", id),
		"dataCriacao":        day(2026, time.January, 20),
		"dataUltimaExecucao": day(2026, time.January, 29-id%3),
		"totalExecucoes":     100 + id*10,
		"taxa_sucesso":       90 + id%10,
	}
}

func relatorio(id int) Fixture {
	return Fixture{
		"id":                    strconv.Itoa(id),
		"nome":                  fmt.Sprintf("Relatório %d", id),
		"descricao":             fmt.Sprintf("Descrição do relatório %d", id),
		"tipo":                  pick([]string{"vendas", "financeiro", "rh", "operacional"}, id),
		"dataCriacao":           day(2026, time.January, 29-id),
		"dataUltimaatualizacao": day(2026, time.January, 29-id%3),
		"criador":               fmt.Sprintf("Usuário %d", id),
		"criadorId":             strconv.Itoa(id),
		"periodoInicio":         day(2026, time.January, 1),
		"periodoFim":            day(2026, time.January, 29),
		"formato":               pick([]string{"pdf", "excel", "csv"}, id),
		"status":                "disponivel",
	}
}
