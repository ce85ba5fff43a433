package model

// Session — активная привязка токена к пользователю: последний известный
// снимок профиля плюс сам факт «этот токен был выдан этому пользователю».
// Снимок обновляется только при успешном изменении профиля.
type Session struct {
	User UserPublic
}

// Key возвращает ключ пользователя, которому принадлежит сессия.
// Равенство сессий определяется этим ключом, а не полным сравнением снимков.
func (s Session) Key() Username {
	return s.User.Key()
}
