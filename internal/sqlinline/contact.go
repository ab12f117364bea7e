package sqlinline

const QInsertContactMessage = `--sql 7c0f06e7-9f2e-4f3b-8fb0-2a7c2cf4f6d1
insert into contact_messages(id, name, email, message, country, locale, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::text, $7::timestamptz);
`
