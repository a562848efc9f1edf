package chat

import (
	"fmt"
	"strings"

	"github.com/gelaboca/gelaboca-backend/internal/catalog"
)

// SeedSystemMessage opens every conversation history.
const SeedSystemMessage = "Você é o GelinhIA, assistente virtual da sorveteria GelaBoca. Seja sempre amigável e prestativo!"

const (
	// FallbackApology is the reply when the pipeline fails outright.
	FallbackApology = "Desculpe, tive um probleminha técnico aqui! 😅 Pode tentar novamente? Estou aqui para te ajudar!"

	// FallbackGreeting is the reply when no product applies and the model
	// yields nothing usable.
	FallbackGreeting = "Olá! Sou o GelinhIA, seu assistente virtual da GelaBoca! 😊 Como posso te ajudar hoje?"

	// selectionNone is the sentinel the selection stage emits for
	// non-product questions.
	selectionNone = "NENHUM"
)

const rewriteSystemPrompt = `Você é o GelinhIA, assistente virtual da sorveteria GelaBoca.

Sua função é ajustar e contextualizar as mensagens dos usuários para torná-las mais completas e diretas, facilitando a busca por produtos.

Analise a mensagem do usuário e todo o contexto da conversa, e retorne uma versão ajustada que seja:
- Mais específica sobre o que o usuário quer
- Inclua informações relevantes do contexto da conversa
- Seja direta e clara sobre a intenção
- Mantenha a essência da solicitação original

Retorne APENAS a mensagem ajustada, sem explicações adicionais.`

const selectSystemPrompt = `Você é o GelinhIA, assistente virtual da sorveteria GelaBoca.

Analise a mensagem do usuário, o histórico da conversa e a lista de produtos similares fornecida.
Selecione o produto que MELHOR atende à solicitação do usuário.

REGRAS IMPORTANTES:
1. Se o usuário menciona qualquer produto, sabor, ou demonstra interesse em comprar/experimentar algo, SEMPRE selecione um produto da lista
2. Se o usuário pergunta "você tem", "quero", "gostaria de", "tem algum", etc., SEMPRE selecione um produto
3. Só retorne "NENHUM" se a solicitação for sobre horários, localização, pagamento, ou outros assuntos NÃO relacionados a produtos

EXEMPLOS:
- "quero um sorvete" → selecione um sorvete
- "tem chocolate?" → selecione produto com chocolate
- "qual horário vocês abrem?" → retorne "NENHUM"

Retorne APENAS o ID completo do produto escolhido ou "NENHUM".`

const respondProductSystemPrompt = `Você é o GelinhIA, assistente virtual da sorveteria GelaBoca.

Você deve responder de forma BREVE, DIRETA e AMIGÁVEL sobre o produto selecionado.
Sua resposta deve:
- Ser concisa (máximo 2-3 frases)
- Incluir preço e destaque principal do produto
- Manter tom entusiasmado mas direto
- Usar 1-2 emojis no máximo

Exemplo de resposta ideal:
"Ah, o Gela Cone Crocante é uma delícia! 😋 Custa R$ 20,00 e combina sorvete cremoso com casquinha crocante. Posso te ajudar com mais alguma coisa?"

Seja direto e resolva a dúvida do usuário rapidamente.`

const generalSystemPrompt = `Você é o GelinhIA, assistente virtual da sorveteria GelaBoca.
Responda de forma amigável e ajude o cliente com informações sobre a sorveteria,
horários, localização, ou qualquer outra dúvida. Seja sempre simpático e prestativo.`

func conversationContext(history []Message) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func rewritePrompt(userMessage string, history []Message) string {
	return fmt.Sprintf(`%s

Histórico da conversa:
%s

Mensagem atual do usuário: %q

Mensagem ajustada:`, rewriteSystemPrompt, conversationContext(history), userMessage)
}

func selectPrompt(userMessage string, history []Message, candidates []catalog.Product) string {
	lines := make([]string, 0, len(candidates))
	for _, product := range candidates {
		lines = append(lines, fmt.Sprintf("ID: %s - %s: %s (R$ %.2f)", product.ID, product.Name, product.Description, product.Price))
	}

	return fmt.Sprintf(`%s

Histórico da conversa:
%s

Mensagem atual: %q

Produtos similares disponíveis:
%s

ID do produto escolhido:`, selectSystemPrompt, conversationContext(history), userMessage, strings.Join(lines, "\n"))
}

func respondProductPrompt(userMessage string, history []Message, product catalog.Product) string {
	productInfo := fmt.Sprintf(`
Produto: %s
Descrição: %s
Preço: R$ %.2f
Categoria: %s
Ingredientes: %s
Adicionais disponíveis: %s
`, product.Name, product.Description, product.Price, product.Category,
		strings.Join(product.Ingredients, ", "), strings.Join(product.Addons, ", "))

	return fmt.Sprintf(`%s

Histórico da conversa:
%s

Mensagem do usuário: %q

Informações do produto selecionado:
%s

Resposta do GelinhIA:`, respondProductSystemPrompt, conversationContext(history), userMessage, productInfo)
}

func productFallbackEmpty(product catalog.Product) string {
	return fmt.Sprintf("Ah, o %s é uma delícia! 😋 Custa R$ %.2f. Posso te ajudar com mais alguma coisa?", product.Name, product.Price)
}

func productFallbackError(product catalog.Product) string {
	return fmt.Sprintf("Que legal! O %s é uma excelente opção! 😊 Custa R$ %.2f. Posso te ajudar com mais alguma coisa?", product.Name, product.Price)
}
