package report

import (
	"fmt"
	"sort"
	"strings"
)

// DepressionRecommendation advises on the facial expression score.
func DepressionRecommendation(score float64) string {
	switch VideoLevel(score) {
	case LevelLow:
		return "Não foram detectados sinais significativos de depressão nas expressões faciais."
	case LevelModerate:
		return "Alguns indicadores de expressão facial podem sugerir cansaço ou tristeza. Recomenda-se observação e diálogo aberto."
	default:
		return "ATENÇÃO: Múltiplos indicadores detectados. Recomenda-se fortemente buscar avaliação profissional de saúde mental."
	}
}

// BruiseRecommendation advises on the bruise risk score, naming the
// locations in sorted order.
func BruiseRecommendation(score int, locations map[string]int) string {
	names := sortedKeys(locations)
	switch BruiseLevel(score) {
	case LevelLow:
		return "Não foram detectados hematomas significativos."
	case LevelModerate:
		var b strings.Builder
		b.WriteString("Foram detectados alguns hematomas. ")
		if len(names) > 0 {
			fmt.Fprintf(&b, "Localizações: %s. ", strings.Join(names, ", "))
		}
		b.WriteString("Recomenda-se investigar a origem dessas marcas.")
		return b.String()
	default:
		return fmt.Sprintf("ALERTA: Múltiplos hematomas detectados em diversas regiões. Localizações: %s. "+
			"RECOMENDAÇÃO URGENTE: Avaliação médica e/ou avaliação de segurança pessoal. "+
			"Em caso de violência doméstica, ligue 180 (Central de Atendimento à Mulher).", strings.Join(names, ", "))
	}
}

// MarksRecommendation advises on the number of red marks.
func MarksRecommendation(count int) string {
	switch {
	case count < 3:
		return "Poucas ou nenhuma marca detectada."
	case count < 8:
		return "Algumas marcas vermelhas foram detectadas. Podem ser irritações cutâneas, arranhões ou outros problemas de pele. Recomenda-se observação."
	default:
		return "Múltiplas marcas detectadas. Recomenda-se avaliação dermatológica ou médica para investigar possíveis problemas de saúde da pele."
	}
}

var tierRecommendations = map[string][]string{
	RiskLow: {
		"✓ Não foram detectados sinais significativos de depressão.",
		"✓ Continue mantendo hábitos saudáveis e rede de apoio.",
	},
	RiskModerate: {
		"⚠ ATENÇÃO: Alguns indicadores de depressão foram detectados.",
		"⚠ Recomendações:",
		"  • Converse com pessoas de confiança sobre como você se sente",
		"  • Considere procurar apoio psicológico",
		"  • Mantenha rotina de sono e alimentação saudável",
		"  • Pratique atividades físicas regularmente",
	},
	RiskHigh: {
		"🚨 ALERTA: Múltiplos indicadores de depressão detectados.",
		"🚨 RECOMENDAÇÃO URGENTE:",
		"  • Procure IMEDIATAMENTE um profissional de saúde mental",
		"  • Um psicólogo ou psiquiatra pode fazer avaliação adequada",
		"  • Não enfrente isso sozinho(a)",
		"  • CVV - Centro de Valorização da Vida: 188 (24h, gratuito)",
	},
	RiskVeryHigh: {
		"🆘 URGÊNCIA MÁXIMA: Sinais graves de depressão detectados.",
		"🆘 AÇÃO IMEDIATA NECESSÁRIA:",
		"  • LIGUE AGORA: CVV 188 ou SAMU 192",
		"  • Procure IMEDIATAMENTE atendimento médico de emergência",
		"  • Informe familiares e amigos sobre sua situação",
		"  • Você não está sozinho(a) e há ajuda disponível",
	},
}

const (
	maxVisualIndicators = 3
	maxSpeechKeywords   = 5
)

// FinalRecommendation builds the fused depression advice for tier, followed
// by up to three visual indicators and five speech keywords.
func FinalRecommendation(tier string, visualIndicators, keywords []string) string {
	lines := append([]string(nil), tierRecommendations[tier]...)
	if len(visualIndicators) > 0 {
		lines = append(lines, "\nIndicadores Visuais:")
		for _, ind := range visualIndicators[:min(len(visualIndicators), maxVisualIndicators)] {
			lines = append(lines, "  • "+ind)
		}
	}
	if len(keywords) > 0 {
		lines = append(lines, "\nIndicadores na Fala:")
		lines = append(lines, "  • Palavras-chave detectadas: "+strings.Join(keywords[:min(len(keywords), maxSpeechKeywords)], ", "))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
