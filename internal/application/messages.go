package application

// Client facing messages.
const (
	MsgServerError    = "Error del servidor"
	MsgInvalidPayload = "Datos inválidos"

	MsgRegisterRequired  = "Nombre, email y contraseña son obligatorios"
	MsgLoginRequired     = "Email y contraseña son obligatorios"
	MsgInvalidEmail      = "Email inválido"
	MsgPasswordTooShort  = "La contraseña debe tener al menos 6 caracteres"
	MsgEmailTaken        = "El email ya está registrado"
	MsgUsernameTaken     = "El nombre de usuario ya está en uso"
	MsgInvalidLogin      = "Credenciales inválidas"
	MsgUserNotFound      = "Usuario no encontrado"
	MsgTokenMissing      = "No autorizado, token no encontrado"
	MsgTokenInvalid      = "Token inválido o expirado"
	MsgBioTooLong        = "La biografía no puede superar los 500 caracteres"
	MsgAvatarType        = "El avatar debe ser una imagen JPG, PNG, GIF o WEBP"
	MsgAvatarUnavailable = "La subida de archivos no está disponible"
	MsgAvatarTooLarge    = "El avatar no puede superar los 5MB"

	MsgPostRequired      = "Título, contenido y descripción son obligatorios"
	MsgPostNotFound      = "Post no encontrado"
	MsgPostTitleTooLong  = "El título no puede superar los 200 caracteres"
	MsgPostDescTooLong   = "La descripción no puede superar los 500 caracteres"
	MsgPostEditForbidden = "No tienes permiso para editar este post"
	MsgPostDelForbidden  = "No tienes permiso para eliminar este post"

	MsgCommentRequired      = "El ID del post y el contenido son obligatorios"
	MsgCommentEmpty         = "El contenido es obligatorio"
	MsgCommentTooLong       = "El comentario no puede superar los 1000 caracteres"
	MsgCommentNotFound      = "Comentario no encontrado"
	MsgParentNotFound       = "Comentario padre no encontrado"
	MsgReplyToReply         = "No se puede responder a una respuesta"
	MsgParentOtherPost      = "El comentario padre pertenece a otro post"
	MsgCommentEditForbidden = "No tienes permiso para editar este comentario"
	MsgCommentDelForbidden  = "No tienes permiso para eliminar este comentario"

	MsgContactRequired = "Todos los campos son obligatorios"
)
