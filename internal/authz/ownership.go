package authz

// CanModify решает, может ли requester менять ресурс, которым владеет ownerID.
// Анонимный запрос запрещён всегда. Вызывать после проверки существования
// ресурса и до мутации: отказ здесь означает 403, а не 404.
func CanModify(ownerID, requesterID int, authenticated bool) bool {
	if !authenticated {
		return false
	}
	return ownerID == requesterID
}
