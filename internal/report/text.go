package report

import (
	"fmt"
	"strings"
)

var (
	rule80 = strings.Repeat("=", 80)
	dash80 = strings.Repeat("-", 80)
	rule72 = strings.Repeat("=", 72)
)

const bullet = "  • "

// RenderVideoText renders analysis_report.txt.
func RenderVideoText(r VideoReport) string {
	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	line(rule80)
	line("RELATÓRIO DE ANÁLISE DE VÍDEO")
	line("Detecção de Sinais de Depressão, Hematomas e Problemas de Saúde")
	line(rule80)
	line("")
	line("Arquivo Analisado: %s", r.Arquivo)
	line("Data da Análise: %s", r.Timestamp)
	line("Frames Analisados: %d", r.FramesAnalisados)
	line("")

	line(dash80)
	line("1. ANÁLISE DE SINAIS DE DEPRESSÃO (Expressões Faciais)")
	line(dash80)
	line("Score de Depressão: %s", formatScore(r.Depressao.Score))
	line("Nível: %s", describe(videoLevelText, r.Depressao.Nivel))
	line("")
	if len(r.Depressao.Indicadores) > 0 {
		line("Indicadores Encontrados:")
		for _, ind := range r.Depressao.Indicadores {
			line(bullet + ind)
		}
	} else {
		line("Nenhum indicador significativo encontrado.")
	}
	line("")
	line("Recomendação: %s", r.Depressao.Recomendacao)
	line("")

	line(dash80)
	line("2. ANÁLISE DE HEMATOMAS (Possível Violência Doméstica)")
	line(dash80)
	line("Total de Hematomas Detectados: %d", r.Hematomas.Total)
	line("Score de Risco: %d", r.Hematomas.ScoreRisco)
	line("Nível de Risco: %s", describe(bruiseLevelText, r.Hematomas.NivelRisco))
	line("")
	if len(r.Hematomas.Localizacoes) > 0 {
		line("Localizações dos Hematomas:")
		for _, loc := range sortedKeys(r.Hematomas.Localizacoes) {
			line(bullet+"%s: %d ocorrência(s)", loc, r.Hematomas.Localizacoes[loc])
		}
	} else {
		line("Nenhum hematoma detectado.")
	}
	line("")
	line("Recomendação: %s", r.Hematomas.Recomendacao)
	line("")

	line(dash80)
	line("3. ANÁLISE DE MARCAS E MACHUCADOS (Problemas de Saúde)")
	line(dash80)
	line("Total de Marcas Detectadas: %d", r.Marcas.Total)
	line("")
	if len(r.Marcas.Tipos) > 0 {
		line("Tipos de Marcas:")
		for _, kind := range sortedKeys(r.Marcas.Tipos) {
			line(bullet+"%s: %d ocorrência(s)", kind, r.Marcas.Tipos[kind])
		}
	} else {
		line("Nenhuma marca significativa detectada.")
	}
	line("")
	line("Recomendação: %s", r.Marcas.Recomendacao)
	line("")

	line(rule80)
	line("IMPORTANTE:")
	line("Esta análise é baseada em processamento de imagem por computador e deve ser")
	line("considerada como uma ferramenta de triagem, não um diagnóstico definitivo.")
	line("Recomenda-se sempre consulta com profissionais qualificados.")
	line(rule80)
	return b.String()
}

// RenderAudioText renders audio_analysis_report.txt.
func RenderAudioText(r AudioReport) string {
	var b strings.Builder
	a := r.AnaliseFala

	fmt.Fprintf(&b, "%s\nRELATÓRIO DE ANÁLISE DE ÁUDIO\n%s\n\n", rule72, rule72)
	fmt.Fprintf(&b, "Arquivo: %s\n\n", r.Arquivo)
	fmt.Fprintf(&b, "--- TRANSCRIÇÃO (trecho) ---\n%s\n\n", r.Transcricao)
	fmt.Fprintf(&b, "--- ANÁLISE ---\nScore: %d  Nível: %s\n", a.ScoreDepressao, a.Nivel)
	fmt.Fprintf(&b, "Hesitações: %d\n\n", a.Hesitacoes)
	if len(a.Keywords) > 0 {
		b.WriteString("Palavras-chave:\n")
		for _, kw := range a.Keywords {
			b.WriteString(bullet + kw + "\n")
		}
	}
	if len(a.Indicadores) > 0 {
		b.WriteString("\nIndicadores:\n")
		for _, ind := range a.Indicadores {
			b.WriteString(bullet + ind + "\n")
		}
	}
	if v := a.FeaturesVoz; v != nil {
		b.WriteString("\nFeatures vocais:\n")
		fmt.Fprintf(&b, "%spitch_medio: %s\n", bullet, formatScore(v.PitchMedio))
		fmt.Fprintf(&b, "%senergia: %s\n", bullet, formatScore(v.Energia))
		fmt.Fprintf(&b, "%szero_crossing_rate: %s\n", bullet, formatScore(v.ZeroCrossingRate))
		fmt.Fprintf(&b, "%spausas_longas: %d\n", bullet, v.PausasLongas)
	}
	fmt.Fprintf(&b, "\n%s\n", rule72)
	return b.String()
}

// RenderFinalText renders RELATORIO_FINAL_INTEGRADO.txt.
func RenderFinalText(r FinalReport) string {
	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }
	in := r.AnaliseIntegrada

	line(rule80)
	line("RELATÓRIO FINAL INTEGRADO - ANÁLISE DE VÍDEO")
	line("Sistema de Detecção de Depressão, Violência Doméstica e Problemas de Saúde")
	line(rule80)
	line("")
	line("Arquivo Analisado: %s", r.Arquivo)
	line("Data/Hora da Análise: %s", r.Timestamp)
	line("")

	line(rule80)
	line("RESUMO EXECUTIVO")
	line(rule80)
	line("")

	line("1. ANÁLISE DE DEPRESSÃO")
	line(dash80)
	line("Score Total: %s", formatScore(in.Depressao.ScoreTotal))
	line("Nível de Risco: %s", in.Depressao.NivelRisco)
	line("Score Visual (Expressões): %s", formatScore(in.Depressao.ScoreVisual))
	line("Score Áudio (Fala): %s", formatScore(in.Depressao.ScoreAudio))
	line("")
	line("RECOMENDAÇÃO:")
	line("%s", in.Depressao.RecomendacaoFinal)
	line("")

	line("2. ANÁLISE DE POSSÍVEL VIOLÊNCIA DOMÉSTICA (Hematomas)")
	line(dash80)
	line("Hematomas Detectados: %d", in.ViolenciaDomestica.HematomasDetectados)
	line("Score de Risco: %d", in.ViolenciaDomestica.ScoreRisco)
	line("Nível de Risco: %s", in.ViolenciaDomestica.NivelRisco)
	line("")
	line("RECOMENDAÇÃO:")
	line("%s", in.ViolenciaDomestica.Recomendacao)
	line("")

	line("3. ANÁLISE DE PROBLEMAS DE SAÚDE (Marcas e Machucados)")
	line(dash80)
	line("Marcas Detectadas: %d", in.ProblemasSaude.MarcasDetectadas)
	line("")
	line("RECOMENDAÇÃO:")
	line("%s", in.ProblemasSaude.Recomendacao)
	line("")

	line(rule80)
	line("RECURSOS E LINHAS DE APOIO")
	line(rule80)
	line("")
	line("SAÚDE MENTAL:")
	line("• CVV - Centro de Valorização da Vida: 188 (24h, gratuito)")
	line("• CAPS - Centro de Atenção Psicossocial (busque o mais próximo)")
	line("• SAMU: 192 (emergências)")
	line("")
	line("VIOLÊNCIA DOMÉSTICA:")
	line("• Central de Atendimento à Mulher: 180 (24h, gratuito)")
	line("• Polícia Militar: 190")
	line("• Delegacia da Mulher (busque a mais próxima)")
	line("• Disque Direitos Humanos: 100")
	line("")
	line("SAÚDE GERAL:")
	line("• SAMU: 192")
	line("• UBS - Unidade Básica de Saúde (busque a mais próxima)")
	line("")

	line(rule80)
	line("IMPORTANTE")
	line(rule80)
	line("Esta análise é baseada em inteligência artificial e processamento de imagem.")
	line("NÃO substitui avaliação profissional médica ou psicológica.")
	line("Em caso de risco, procure ajuda profissional IMEDIATAMENTE.")
	line(rule80)
	return b.String()
}

func describe(texts map[string]string, level string) string {
	if text, ok := texts[level]; ok {
		return text
	}
	return level
}

// formatScore prints floats without trailing zeros, so 1.5 stays "1.5" and
// 2 prints as "2.0".
func formatScore(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
