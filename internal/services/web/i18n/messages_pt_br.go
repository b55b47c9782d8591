package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "app.name", "Tabletop")
	message.SetString(lang, "title.page", "%s | Tabletop")
	message.SetString(lang, "nav.campaigns", "Campanhas")
	message.SetString(lang, "nav.characters", "Personagens")
	message.SetString(lang, "nav.assistant", "Assistente")

	message.SetString(lang, "campaigns.title", "Campanhas")
	message.SetString(lang, "campaigns.empty", "Nenhuma campanha ainda.")
	message.SetString(lang, "campaigns.new", "Nova campanha")
	message.SetString(lang, "campaigns.edit", "Editar")
	message.SetString(lang, "campaigns.delete", "Excluir")
	message.SetString(lang, "campaigns.generate_art", "Gerar arte")
	message.SetString(lang, "campaigns.generating_art", "Gerando arte…")
	message.SetString(lang, "campaigns.no_description", "Sem descrição.")
	message.SetString(lang, "campaigns.delete.title", "Excluir campanha")
	message.SetString(lang, "campaigns.delete.prompt", "Excluir %s? Personagens e sessões permanecem, desvinculados da campanha.")
	message.SetString(lang, "campaigns.delete.confirm", "Excluir campanha")
	message.SetString(lang, "campaigns.delete.cancel", "Cancelar")

	message.SetString(lang, "wizard.title.create", "Nova campanha")
	message.SetString(lang, "wizard.title.edit", "Editar campanha")
	message.SetString(lang, "wizard.step.basics", "Básico")
	message.SetString(lang, "wizard.step.review", "Revisão")
	message.SetString(lang, "wizard.next", "Próximo")
	message.SetString(lang, "wizard.back", "Voltar")
	message.SetString(lang, "wizard.close", "Fechar")
	message.SetString(lang, "wizard.commit.create", "Criar campanha")
	message.SetString(lang, "wizard.commit.edit", "Salvar alterações")
	message.SetString(lang, "wizard.loading", "Carregando campanha…")

	message.SetString(lang, "field.name", "Nome")
	message.SetString(lang, "field.description", "Descrição")
	message.SetString(lang, "field.campaign_id", "Campanha")
	message.SetString(lang, "field.max_hp", "PV máximo")
	message.SetString(lang, "field.level", "Nível")
	message.SetString(lang, "field.ac", "Classe de armadura")
	message.SetString(lang, "field.initiative_bonus", "Bônus de iniciativa")
	message.SetString(lang, "field.temp_hp", "PV temporário")
	message.SetString(lang, "field.race", "Raça")
	message.SetString(lang, "field.class", "Classe")
	message.SetString(lang, "field.background", "Antecedente")
	message.SetString(lang, "field.alignment", "Tendência")
	message.SetString(lang, "field.notes", "Notas")
	message.SetString(lang, "form.save", "Salvar")
	message.SetString(lang, "form.loading", "Carregando…")

	message.SetString(lang, "characters.title", "Personagens")
	message.SetString(lang, "characters.empty", "Nenhum personagem ainda.")
	message.SetString(lang, "characters.new", "Novo personagem")
	message.SetString(lang, "characters.edit", "Editar personagem")
	message.SetString(lang, "character.unnamed", "Personagem sem nome")
	message.SetString(lang, "character.level", "Nível %s")
	message.SetString(lang, "character.hp", "PV %s")
	message.SetString(lang, "character.ac", "CA %s")

	message.SetString(lang, "sessions.empty", "Nenhuma sessão.")
	message.SetString(lang, "session.unnamed", "Sessão sem nome")
	message.SetString(lang, "session.status.active", "Ativa")
	message.SetString(lang, "session.status.ended", "Encerrada")
	message.SetString(lang, "session.status.unknown", "Status desconhecido")
	message.SetString(lang, "session.started", "Iniciada em %s")
	message.SetString(lang, "session.ended", "Encerrada em %s")

	message.SetString(lang, "assistant.title", "Assistente")
	message.SetString(lang, "assistant.placeholder", "As mensagens do assistente aparecem aqui.")

	message.SetString(lang, "error.generic", "Algo deu errado. Tente novamente.")
	message.SetString(lang, "error.malformed_payload", "Este bloco não é um JSON válido.")
	message.SetString(lang, "error.invalid_shape", "Este bloco tem um formato não suportado.")
	message.SetString(lang, "error.resolution_failed", "Não foi possível carregar os registros: %s")
	message.SetString(lang, "error.not_found", "Não encontrado.")
	message.SetString(lang, "error.unavailable", "O serviço de campanhas está indisponível.")
	message.SetString(lang, "error.busy", "Essa ação já está em andamento.")

	message.SetString(lang, "flash.campaign_created", "Campanha criada.")
	message.SetString(lang, "flash.campaign_updated", "Campanha atualizada.")
	message.SetString(lang, "flash.campaign_deleted", "Campanha excluída.")
	message.SetString(lang, "flash.character_saved", "Personagem salvo.")
}
