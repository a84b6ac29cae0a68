package folha

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
)

var exportHeader = []string{
	"ID", "Cliente", "Colaborador", "Função", "Empresa", "CTT",
	"Valor", "Adicional", "Reembolso", "Desconto", "Valor Total", "Valor Total s/ Reembolso",
	"Situação", "Data Pgto",
	"NF Número", "NF Status", "NF Pagamento", "NF Data", "NF Obs",
	"% Empresa 1", "% Empresa 2", "% Empresa 3", "% Empresa 4", "% Total",
	"Status OMIE", "Código OMIE",
}

var templateHeader = []string{
	"COLABORADOR", "FUNÇÃO", "EMPRESA", "CTT",
	"VALOR", "ADICIONAL", "REEMBOLSO", "DESCONTO", "VALOR TOTAL", "VALOR TOTAL S/ REEMBOLSO",
	"SITUAÇÃO", "DATA PGTO", "NOTA FISCAL", "STATUS", "PAGAMENTO", "DATA NF", "OBS",
	"EMPRESA 1 %", "EMPRESA 2 %", "EMPRESA 3 %", "EMPRESA 4 %", "%TOTAL",
}

var templateExample = []string{
	"João da Silva", "Analista", "Empresa Cliente LTDA", "ADM-001",
	"5000.00", "500.00", "200.00", "100.00", "5600.00", "5400.00",
	"pendente", "2025-12-05", "NF-2025-001", "aguardando", "pendente", "2025-12-01", "Sem observações",
	"50", "50", "0", "0", "100",
}

// Export writes the lines matching f as CSV.
func (s *Service) Export(ctx context.Context, f record.Filter, w io.Writer) (int, error) {
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	rows := s.Store().Select(f)
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("folha: write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(exportRow(row)); err != nil {
			return 0, fmt.Errorf("folha: write csv row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("folha: flush csv: %w", err)
	}
	return len(rows), nil
}

// WriteTemplate writes the import spreadsheet template with one example row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{templateHeader, templateExample}); err != nil {
		return fmt.Errorf("folha: write template: %w", err)
	}
	return nil
}

func exportRow(f FolhaCliente) []string {
	nf := NotaFiscal{}
	if f.NotaFiscal != nil {
		nf = *f.NotaFiscal
	}
	obs := nf.Obs
	if obs == "" {
		obs = f.Obs
	}
	row := []string{
		f.ID, f.Cliente.Nome, f.Colaborador, f.Funcao, f.Empresa, f.CTT,
		money(f.Valor), money(f.Adicional), money(f.Reembolso), money(f.Desconto),
		money(f.ValorTotal), money(f.ValorTotalSemReembolso),
		f.Situacao, f.DataPagamento,
		nf.Numero, nf.Status, nf.Pagamento, nf.Data, obs,
	}
	for i := 0; i < 4; i++ {
		if i < len(f.Distribuicao) {
			row = append(row, percent(f.Distribuicao[i].Percent))
		} else {
			row = append(row, "")
		}
	}
	total := ""
	if len(f.Distribuicao) > 0 {
		total = percent(form.DistributionTotal(f.Percents()))
	}
	return append(row, total, f.StatusOmie, f.CodigoOmie)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
